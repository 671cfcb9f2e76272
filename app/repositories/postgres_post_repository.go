package repositories

import (
	"context"

	"postboard/app/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postColumns = `id, title, body, created_at, updated_at`

// PostgresPostRepository implements PostRepository on the posts table
type PostgresPostRepository struct {
	pool *pgxpool.Pool
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var p models.Post
	if err := row.Scan(&p.ID, &p.Title, &p.Body, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresPostRepository) Create(ctx context.Context, post *models.Post) error {
	post.BeforeCreate()
	return r.pool.QueryRow(ctx,
		`INSERT INTO posts (title, body, created_at, updated_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		post.Title, post.Body, post.CreatedAt, post.UpdatedAt,
	).Scan(&post.ID)
}

func (r *PostgresPostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	post, err := scanPost(r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return post, nil
}

func (r *PostgresPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+postColumns+` FROM posts ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *PostgresPostRepository) Update(ctx context.Context, post *models.Post) error {
	existing, err := r.GetByID(ctx, post.ID)
	if err != nil {
		return err
	}
	post.BeforeUpdate(existing)
	tag, err := r.pool.Exec(ctx,
		`UPDATE posts SET title = $2, body = $3, updated_at = $4 WHERE id = $1`,
		post.ID, post.Title, post.Body, post.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Upsert relies on ON CONFLICT for atomicity; xmax is zero only on rows the
// statement inserted.
func (r *PostgresPostRepository) Upsert(ctx context.Context, post *models.Post) (bool, error) {
	post.BeforeCreate()
	var created bool
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO posts (id, title, body, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, body = EXCLUDED.body, updated_at = EXCLUDED.updated_at
			RETURNING created_at, updated_at, (xmax = 0)`,
			post.ID, post.Title, post.Body, post.CreatedAt, post.UpdatedAt,
		).Scan(&post.CreatedAt, &post.UpdatedAt, &created)
		if err != nil {
			return err
		}
		if created {
			return bumpSerial(ctx, tx, "posts")
		}
		return nil
	})
	return created, err
}

func (r *PostgresPostRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
