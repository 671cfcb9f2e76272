package repositories

import (
	"context"

	"postboard/app/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const commentColumns = `id, post_id, name, email, body, created_at, updated_at`

// PostgresCommentRepository implements CommentRepository on the comments table
type PostgresCommentRepository struct {
	pool *pgxpool.Pool
}

func scanComment(row pgx.Row) (*models.Comment, error) {
	var c models.Comment
	if err := row.Scan(&c.ID, &c.PostID, &c.Name, &c.Email, &c.Body, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	comment.BeforeCreate()
	return r.pool.QueryRow(ctx,
		`INSERT INTO comments (post_id, name, email, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		comment.PostID, comment.Name, comment.Email, comment.Body, comment.CreatedAt, comment.UpdatedAt,
	).Scan(&comment.ID)
}

func (r *PostgresCommentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	comment, err := scanComment(r.pool.QueryRow(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return comment, nil
}

func (r *PostgresCommentRepository) List(ctx context.Context, filter CommentFilter) ([]*models.Comment, error) {
	if filter.PostID != nil {
		return r.ListByPost(ctx, *filter.PostID)
	}
	return r.query(ctx, `SELECT `+commentColumns+` FROM comments ORDER BY created_at, id`)
}

func (r *PostgresCommentRepository) ListByPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	return r.query(ctx, `SELECT `+commentColumns+` FROM comments WHERE post_id = $1 ORDER BY created_at, id`, postID)
}

func (r *PostgresCommentRepository) query(ctx context.Context, sql string, args ...any) ([]*models.Comment, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*models.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

func (r *PostgresCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	existing, err := r.GetByID(ctx, comment.ID)
	if err != nil {
		return err
	}
	comment.BeforeUpdate(existing)
	tag, err := r.pool.Exec(ctx,
		`UPDATE comments SET post_id = $2, name = $3, email = $4, body = $5, updated_at = $6 WHERE id = $1`,
		comment.ID, comment.PostID, comment.Name, comment.Email, comment.Body, comment.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresCommentRepository) Upsert(ctx context.Context, comment *models.Comment) (bool, error) {
	comment.BeforeCreate()
	var created bool
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO comments (id, post_id, name, email, body, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE SET post_id = EXCLUDED.post_id, name = EXCLUDED.name,
				email = EXCLUDED.email, body = EXCLUDED.body, updated_at = EXCLUDED.updated_at
			RETURNING created_at, updated_at, (xmax = 0)`,
			comment.ID, comment.PostID, comment.Name, comment.Email, comment.Body, comment.CreatedAt, comment.UpdatedAt,
		).Scan(&comment.CreatedAt, &comment.UpdatedAt, &created)
		if err != nil {
			return err
		}
		if created {
			return bumpSerial(ctx, tx, "comments")
		}
		return nil
	})
	return created, err
}

func (r *PostgresCommentRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
