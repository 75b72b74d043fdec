package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ibrahim-anas/BooleanBoard/internal/auth"
	dom "github.com/ibrahim-anas/BooleanBoard/internal/domain"
	"github.com/ibrahim-anas/BooleanBoard/internal/handlers"
	"github.com/ibrahim-anas/BooleanBoard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

const templatesGlob = "../../web/templates/*.html"

// Deliberately not the 24h default, so tests catch anything hard-coded
// to it.
const testSessionTTL = 45 * time.Minute

// In-memory repositories. They speak the same error dialect as the pgx
// implementations (pgx.ErrNoRows, PG error code 23505) so the services
// behave exactly as in production.

type fakeUserRepo struct {
	users  map[int64]dom.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]dom.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, firstName, lastName, email string, passwordHash []byte) (dom.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return dom.User{}, &pgconn.PgError{Code: "23505"}
		}
	}
	f.nextID++
	u := dom.User{ID: f.nextID, FirstName: firstName, LastName: lastName, Email: email, PasswordHash: string(passwordHash)}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (dom.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (dom.User, error) {
	u, ok := f.users[id]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

type fakeTaskRepo struct {
	tasks  map[int64]dom.Task
	nextID int64
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[int64]dom.Task)}
}

func (f *fakeTaskRepo) Create(_ context.Context, t dom.Task) (dom.Task, error) {
	f.nextID++
	t.ID = f.nextID
	f.tasks[t.ID] = t
	return t, nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id int64) (dom.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return dom.Task{}, pgx.ErrNoRows
	}
	return t, nil
}

func (f *fakeTaskRepo) List(_ context.Context) ([]dom.Task, error) {
	list := make([]dom.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, id int64, title, text string) (dom.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return dom.Task{}, pgx.ErrNoRows
	}
	t.Title = title
	t.Text = text
	f.tasks[id] = t
	return t, nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	delete(f.tasks, id)
	return nil
}

type fakeCommentRepo struct {
	comments map[int64]dom.Comment
	users    *fakeUserRepo
	nextID   int64
}

func newFakeCommentRepo(users *fakeUserRepo) *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[int64]dom.Comment), users: users}
}

func (f *fakeCommentRepo) Create(_ context.Context, c dom.Comment) (dom.Comment, error) {
	f.nextID++
	c.ID = f.nextID
	f.comments[c.ID] = c
	return c, nil
}

func (f *fakeCommentRepo) GetByID(_ context.Context, id int64) (dom.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return dom.Comment{}, pgx.ErrNoRows
	}
	return c, nil
}

func (f *fakeCommentRepo) ListByTask(_ context.Context, taskID int64) ([]dom.Comment, error) {
	var list []dom.Comment
	for _, c := range f.comments {
		if c.TaskID != taskID {
			continue
		}
		if u, ok := f.users.users[c.UserID]; ok {
			c.Author = u.FirstName
		}
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (f *fakeCommentRepo) IncrementLike(_ context.Context, id int64) (dom.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return dom.Comment{}, pgx.ErrNoRows
	}
	c.LikeCount++
	f.comments[id] = c
	return c, nil
}

type fakeSessionStore struct {
	sessions map[string]auth.Session
	next     int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]auth.Session)}
}

func (f *fakeSessionStore) Create(_ context.Context, s auth.Session) (string, error) {
	f.next++
	id := "sess-" + strconv.Itoa(f.next)
	f.sessions[id] = s
	return id, nil
}

func (f *fakeSessionStore) Get(_ context.Context, id string) (auth.Session, bool) {
	s, ok := f.sessions[id]
	return s, ok
}

func (f *fakeSessionStore) Delete(_ context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

// fixture wires the real handlers and services over in-memory state,
// with the same route table the app registers at startup.
type fixture struct {
	users    *fakeUserRepo
	tasks    *fakeTaskRepo
	comments *fakeCommentRepo
	sessions *fakeSessionStore
	router   *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	users := newFakeUserRepo()
	tasks := newFakeTaskRepo()
	comments := newFakeCommentRepo(users)
	sessions := newFakeSessionStore()

	userSvc := service.NewUserService(users)
	taskSvc := service.NewTaskService(tasks, nil)
	commentSvc := service.NewCommentService(comments, tasks)

	authHandler := handlers.NewAuthHandler(sessions, userSvc, testSessionTTL)
	taskHandler := handlers.NewTaskHandler(taskSvc, commentSvc)
	commentHandler := handlers.NewCommentHandler(commentSvc, taskSvc)

	r := gin.New()
	r.LoadHTMLGlob(templatesGlob)
	r.Use(auth.LoadSession(sessions))

	r.GET("/", handlers.Home)
	r.GET("/home", handlers.Home)
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

	return &fixture{users: users, tasks: tasks, comments: comments, sessions: sessions, router: r}
}

func (fix *fixture) get(path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	fix.router.ServeHTTP(w, req)
	return w
}

func (fix *fixture) postForm(path string, form url.Values, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	fix.router.ServeHTTP(w, req)
	return w
}

// register signs up a user through the real flow and returns the
// session cookie value issued by the server.
func (fix *fixture) register(t *testing.T, first, last, email, password string) string {
	t.Helper()
	w := fix.postForm("/register", url.Values{
		"firstname": {first},
		"lastname":  {last},
		"email":     {email},
		"password":  {password},
	}, "")
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/tasks", w.Header().Get("Location"))
	return sessionCookie(t, w)
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName && c.Value != "" {
			return c.Value
		}
	}
	t.Fatal("no session cookie set")
	return ""
}
