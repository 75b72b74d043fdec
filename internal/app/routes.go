package app

import (
	"github.com/ibrahim-anas/BooleanBoard/internal/auth"
	"github.com/ibrahim-anas/BooleanBoard/internal/cache"
	"github.com/ibrahim-anas/BooleanBoard/internal/config"
	"github.com/ibrahim-anas/BooleanBoard/internal/handlers"
	"github.com/ibrahim-anas/BooleanBoard/internal/repo"
	"github.com/ibrahim-anas/BooleanBoard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Setup builds the route table. Sessions are resolved once per request;
// everything under the board requires a login and redirects anonymous
// visitors to the login form.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	sessionStore := auth.NewRedisStore(rdb, cfg.Redis.SessionTTL.Duration())
	r.Use(auth.LoadSession(sessionStore))

	userRepo := repo.NewPGUserRepo(db)
	taskRepo := repo.NewPGTaskRepo(db)
	commentRepo := repo.NewPGCommentRepo(db)

	boardCache := cache.NewBoardCache(rdb, cfg.Redis.DefaultTTL.Duration())
	userSvc := service.NewUserService(userRepo)
	taskSvc := service.NewTaskService(taskRepo, boardCache)
	commentSvc := service.NewCommentService(commentRepo, taskRepo)

	authHandler := handlers.NewAuthHandler(sessionStore, userSvc, cfg.Redis.SessionTTL.Duration())
	taskHandler := handlers.NewTaskHandler(taskSvc, commentSvc)
	commentHandler := handlers.NewCommentHandler(commentSvc, taskSvc)

	r.GET("/", handlers.Home)
	r.GET("/home", handlers.Home)
	r.GET("/health", healthHandler(cfg, db, rdb))

	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	board := r.Group("/tasks", auth.RequireLogin())
	board.GET("", taskHandler.Board)
	board.GET("/new", taskHandler.New)
	board.POST("/new", taskHandler.Create)
	board.GET("/:id", taskHandler.Show)
	board.GET("/edit/:id", taskHandler.ShowEdit)
	board.POST("/edit/:id", taskHandler.Update)
	board.POST("/delete/:id", taskHandler.Delete)
	board.POST("/:id/comment", commentHandler.Create)
	board.POST("/:id/comments/:comment_id/like", commentHandler.Like)
}

func healthHandler(cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ok := true
		status := gin.H{"env": cfg.App.Env, "version": cfg.App.Version}
		if err := db.Ping(ctx); err != nil {
			ok = false
			status["postgres"] = "down"
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			ok = false
			status["redis"] = "down"
		}
		status["ok"] = ok
		code := 200
		if !ok {
			code = 500
		}
		c.JSON(code, status)
	}
}
