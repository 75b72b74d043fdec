package repo

import (
	"context"

	dom "github.com/ibrahim-anas/BooleanBoard/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepo interface {
	Create(ctx context.Context, t dom.Task) (dom.Task, error)
	GetByID(ctx context.Context, id int64) (dom.Task, error)
	List(ctx context.Context) ([]dom.Task, error)
	Update(ctx context.Context, id int64, title, text string) (dom.Task, error)
	Delete(ctx context.Context, id int64) error
}

type PGTaskRepo struct {
	db *pgxpool.Pool
}

func NewPGTaskRepo(db *pgxpool.Pool) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

func (r *PGTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	query := `
		INSERT INTO tasks (title, text, created_date, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, text, created_date, user_id`
	var out dom.Task
	err := r.db.QueryRow(ctx, query, t.Title, t.Text, t.CreatedDate, t.UserID).Scan(
		&out.ID, &out.Title, &out.Text, &out.CreatedDate, &out.UserID,
	)
	return out, err
}

func (r *PGTaskRepo) GetByID(ctx context.Context, id int64) (dom.Task, error) {
	query := `SELECT id, title, text, created_date, user_id FROM tasks WHERE id = $1`
	var t dom.Task
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Text, &t.CreatedDate, &t.UserID,
	)
	return t, err
}

func (r *PGTaskRepo) List(ctx context.Context) ([]dom.Task, error) {
	query := `SELECT id, title, text, created_date, user_id FROM tasks ORDER BY id DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Task
	for rows.Next() {
		var t dom.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Text, &t.CreatedDate, &t.UserID); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Update overwrites title and text only; id, created_date and owner are
// left untouched.
func (r *PGTaskRepo) Update(ctx context.Context, id int64, title, text string) (dom.Task, error) {
	query := `
		UPDATE tasks SET title = $2, text = $3
		WHERE id = $1
		RETURNING id, title, text, created_date, user_id`
	var t dom.Task
	err := r.db.QueryRow(ctx, query, id, title, text).Scan(
		&t.ID, &t.Title, &t.Text, &t.CreatedDate, &t.UserID,
	)
	return t, err
}

func (r *PGTaskRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}
