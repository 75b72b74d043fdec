package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ibrahim-anas/BooleanBoard/internal/auth"
	"github.com/ibrahim-anas/BooleanBoard/internal/forms"
	"github.com/ibrahim-anas/BooleanBoard/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CommentHandler handles commenting and liking on a task's detail page.
type CommentHandler struct {
	comments *service.CommentService
	tasks    *service.TaskService
}

func NewCommentHandler(comments *service.CommentService, tasks *service.TaskService) *CommentHandler {
	return &CommentHandler{comments: comments, tasks: tasks}
}

// Create posts a comment on a task and returns to its detail page. An
// empty comment re-renders the page with the field message.
func (h *CommentHandler) Create(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var form forms.CommentForm
	if err := c.ShouldBind(&form); err != nil {
		h.rerenderTask(c, id, forms.Errors(err))
		return
	}
	sess, _ := auth.SessionFromContext(c)
	if _, err := h.comments.Create(c.Request.Context(), id, sess.UserID, form.Comment); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.Redirect(http.StatusFound, "/tasks")
			return
		}
		zap.L().Error("create comment", zap.Int64("task_id", id), zap.Error(err))
		c.String(http.StatusInternalServerError, "Something went wrong.")
		return
	}
	c.Redirect(http.StatusFound, "/tasks/"+strconv.FormatInt(id, 10))
}

// Like bumps a comment's like count and returns to the task page. The
// route carries both ids so a like always targets an explicit comment.
func (h *CommentHandler) Like(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	taskURL := "/tasks/" + strconv.FormatInt(id, 10)
	commentID, err := strconv.ParseInt(c.Param("comment_id"), 10, 64)
	if err != nil || commentID <= 0 {
		c.Redirect(http.StatusFound, taskURL)
		return
	}
	if _, err := h.comments.Like(c.Request.Context(), commentID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.Redirect(http.StatusFound, taskURL)
			return
		}
		zap.L().Error("like comment", zap.Int64("comment_id", commentID), zap.Error(err))
		c.String(http.StatusInternalServerError, "Something went wrong.")
		return
	}
	c.Redirect(http.StatusFound, taskURL)
}

// rerenderTask redraws a task's detail page with form errors attached.
func (h *CommentHandler) rerenderTask(c *gin.Context, id int64, errs map[string]string) {
	task, err := h.tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Redirect(http.StatusFound, "/tasks")
		return
	}
	comments, err := h.comments.ListByTask(c.Request.Context(), id)
	if err != nil {
		zap.L().Error("list comments", zap.Int64("task_id", id), zap.Error(err))
		c.String(http.StatusInternalServerError, "Something went wrong.")
		return
	}
	c.HTML(http.StatusOK, "task.html", pageData(c, gin.H{
		"Task":     task,
		"Comments": comments,
		"Errors":   errs,
	}))
}
