package repo

import (
	"context"

	dom "github.com/ibrahim-anas/BooleanBoard/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepo interface {
	Create(ctx context.Context, c dom.Comment) (dom.Comment, error)
	GetByID(ctx context.Context, id int64) (dom.Comment, error)
	ListByTask(ctx context.Context, taskID int64) ([]dom.Comment, error)
	IncrementLike(ctx context.Context, id int64) (dom.Comment, error)
}

type PGCommentRepo struct {
	db *pgxpool.Pool
}

func NewPGCommentRepo(db *pgxpool.Pool) *PGCommentRepo {
	return &PGCommentRepo{db: db}
}

func (r *PGCommentRepo) Create(ctx context.Context, c dom.Comment) (dom.Comment, error) {
	query := `
		INSERT INTO comments (text, task_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, text, task_id, user_id, comment_like`
	var out dom.Comment
	err := r.db.QueryRow(ctx, query, c.Text, c.TaskID, c.UserID).Scan(
		&out.ID, &out.Text, &out.TaskID, &out.UserID, &out.LikeCount,
	)
	return out, err
}

func (r *PGCommentRepo) GetByID(ctx context.Context, id int64) (dom.Comment, error) {
	query := `SELECT id, text, task_id, user_id, comment_like FROM comments WHERE id = $1`
	var c dom.Comment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Text, &c.TaskID, &c.UserID, &c.LikeCount,
	)
	return c, err
}

// ListByTask returns a task's comments oldest first, with the author's
// first name joined in for rendering.
func (r *PGCommentRepo) ListByTask(ctx context.Context, taskID int64) ([]dom.Comment, error) {
	query := `
		SELECT c.id, c.text, c.task_id, c.user_id, c.comment_like, COALESCE(u.first_name, '')
		FROM comments c
		LEFT JOIN users u ON u.id = c.user_id
		WHERE c.task_id = $1
		ORDER BY c.id ASC`
	rows, err := r.db.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Comment
	for rows.Next() {
		var c dom.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.TaskID, &c.UserID, &c.LikeCount, &c.Author); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// IncrementLike bumps comment_like atomically; the count never goes down.
func (r *PGCommentRepo) IncrementLike(ctx context.Context, id int64) (dom.Comment, error) {
	query := `
		UPDATE comments SET comment_like = comment_like + 1
		WHERE id = $1
		RETURNING id, text, task_id, user_id, comment_like`
	var c dom.Comment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Text, &c.TaskID, &c.UserID, &c.LikeCount,
	)
	return c, err
}
