package service

import (
	"context"
	"errors"
	"strings"

	dom "github.com/ibrahim-anas/BooleanBoard/internal/domain"
	"github.com/ibrahim-anas/BooleanBoard/internal/repo"

	"github.com/jackc/pgx/v5"
)

// CommentService handles comments and likes on tasks.
type CommentService struct {
	comments repo.CommentRepo
	tasks    repo.TaskRepo
}

// NewCommentService returns a new CommentService.
func NewCommentService(comments repo.CommentRepo, tasks repo.TaskRepo) *CommentService {
	return &CommentService{comments: comments, tasks: tasks}
}

// Create attaches a comment to a task by the given user. The task must
// exist; commenting on a vanished task maps to ErrNotFound.
func (s *CommentService) Create(ctx context.Context, taskID, userID int64, text string) (dom.Comment, error) {
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Comment{}, ErrNotFound
		}
		return dom.Comment{}, err
	}
	c, err := s.comments.Create(ctx, dom.Comment{
		Text:   strings.TrimSpace(text),
		TaskID: taskID,
		UserID: userID,
	})
	if err != nil {
		return dom.Comment{}, err
	}
	return c, nil
}

// ListByTask returns a task's comments with author names.
func (s *CommentService) ListByTask(ctx context.Context, taskID int64) ([]dom.Comment, error) {
	return s.comments.ListByTask(ctx, taskID)
}

// Like increments a comment's like count and returns the updated comment.
func (s *CommentService) Like(ctx context.Context, commentID int64) (dom.Comment, error) {
	c, err := s.comments.IncrementLike(ctx, commentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Comment{}, ErrNotFound
		}
		return dom.Comment{}, err
	}
	return c, nil
}
