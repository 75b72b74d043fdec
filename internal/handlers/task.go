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

// TaskHandler serves the board and the task pages.
type TaskHandler struct {
	tasks    *service.TaskService
	comments *service.CommentService
}

func NewTaskHandler(tasks *service.TaskService, comments *service.CommentService) *TaskHandler {
	return &TaskHandler{tasks: tasks, comments: comments}
}

// Board lists every task, newest first.
func (h *TaskHandler) Board(c *gin.Context) {
	list, err := h.tasks.List(c.Request.Context())
	if err != nil {
		zap.L().Error("list tasks", zap.Error(err))
		c.String(http.StatusInternalServerError, "Something went wrong.")
		return
	}
	c.HTML(http.StatusOK, "tasks.html", pageData(c, gin.H{"Tasks": list}))
}

// Show renders one task with its comments and an empty comment form.
// A missing task sends the visitor back to the board.
func (h *TaskHandler) Show(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	task, err := h.tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.Redirect(http.StatusFound, "/tasks")
			return
		}
		zap.L().Error("get task", zap.Int64("task_id", id), zap.Error(err))
		c.String(http.StatusInternalServerError, "Something went wrong.")
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
	}))
}

// New renders the blank creation form.
func (h *TaskHandler) New(c *gin.Context) {
	c.HTML(http.StatusOK, "new.html", pageData(c, gin.H{}))
}

// Create adds a task owned by the current user, dated today.
func (h *TaskHandler) Create(c *gin.Context) {
	var form forms.TaskForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "new.html", pageData(c, gin.H{
			"Form":   form,
			"Errors": forms.Errors(err),
		}))
		return
	}
	sess, _ := auth.SessionFromContext(c)
	if _, err := h.tasks.Create(c.Request.Context(), sess.UserID, form.Title, form.Text); err != nil {
		zap.L().Error("create task", zap.Error(err))
		c.String(http.StatusInternalServerError, "Something went wrong.")
		return
	}
	c.Redirect(http.StatusFound, "/tasks")
}

// ShowEdit renders the edit form pre-filled with the task's current
// title and text. The create and edit pages share a template.
func (h *TaskHandler) ShowEdit(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	task, err := h.tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.Redirect(http.StatusFound, "/tasks")
			return
		}
		zap.L().Error("get task", zap.Int64("task_id", id), zap.Error(err))
		c.String(http.StatusInternalServerError, "Something went wrong.")
		return
	}
	c.HTML(http.StatusOK, "new.html", pageData(c, gin.H{"Task": task}))
}

// Update overwrites a task's title and text, nothing else.
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var form forms.TaskForm
	if err := c.ShouldBind(&form); err != nil {
		task, getErr := h.tasks.GetByID(c.Request.Context(), id)
		if getErr != nil {
			c.Redirect(http.StatusFound, "/tasks")
			return
		}
		c.HTML(http.StatusOK, "new.html", pageData(c, gin.H{
			"Task":   task,
			"Errors": forms.Errors(err),
		}))
		return
	}
	if _, err := h.tasks.Update(c.Request.Context(), id, form.Title, form.Text); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.Redirect(http.StatusFound, "/tasks")
			return
		}
		zap.L().Error("update task", zap.Int64("task_id", id), zap.Error(err))
		c.String(http.StatusInternalServerError, "Something went wrong.")
		return
	}
	c.Redirect(http.StatusFound, "/tasks")
}

// Delete removes a task and returns to the board. Deleting an already
// deleted task is a no-op.
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	if err := h.tasks.Delete(c.Request.Context(), id); err != nil {
		zap.L().Error("delete task", zap.Int64("task_id", id), zap.Error(err))
		c.String(http.StatusInternalServerError, "Something went wrong.")
		return
	}
	c.Redirect(http.StatusFound, "/tasks")
}

// taskID parses the :id route parameter. A malformed id redirects to the
// board rather than erroring at the visitor.
func taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.Redirect(http.StatusFound, "/tasks")
		return 0, false
	}
	return id, true
}
