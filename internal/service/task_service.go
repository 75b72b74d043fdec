package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ibrahim-anas/BooleanBoard/internal/cache"
	dom "github.com/ibrahim-anas/BooleanBoard/internal/domain"
	"github.com/ibrahim-anas/BooleanBoard/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var ErrNotFound = errors.New("not found")

// createdDateLayout is the board's display date: MM-DD-YYYY.
const createdDateLayout = "01-02-2006"

type TaskService struct {
	repo  repo.TaskRepo
	cache *cache.BoardCache
	sf    singleflight.Group
}

// NewTaskService creates a TaskService. If c is nil, caching is disabled.
func NewTaskService(r repo.TaskRepo, c *cache.BoardCache) *TaskService {
	return &TaskService{repo: r, cache: c}
}

// Create stamps the task with today's date and the creating user's id.
func (s *TaskService) Create(ctx context.Context, userID int64, title, text string) (dom.Task, error) {
	t, err := s.repo.Create(ctx, dom.Task{
		Title:       strings.TrimSpace(title),
		Text:        strings.TrimSpace(text),
		CreatedDate: time.Now().Format(createdDateLayout),
		UserID:      userID,
	})
	if err != nil {
		return dom.Task{}, err
	}
	s.invalidateCache(ctx)
	return t, nil
}

func (s *TaskService) List(ctx context.Context) ([]dom.Task, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("board", func() (interface{}, error) {
			if list, err := s.cache.GetBoard(ctx); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetBoard(ctx, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Task), nil
	}
	return s.repo.List(ctx)
}

func (s *TaskService) GetByID(ctx context.Context, id int64) (dom.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	return t, nil
}

// Update overwrites title and text of an existing task. Owner and date
// are never touched. Any logged-in user may edit any task: the board is
// shared, matching the product's behavior since the first release.
func (s *TaskService) Update(ctx context.Context, id int64, title, text string) (dom.Task, error) {
	t, err := s.repo.Update(ctx, id, strings.TrimSpace(title), strings.TrimSpace(text))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	s.invalidateCache(ctx)
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *TaskService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
}
