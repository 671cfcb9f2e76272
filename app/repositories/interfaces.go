package repositories

import (
	"context"

	"postboard/app/models"
)

// PostRepository defines the interface for post data access
type PostRepository interface {
	// Create assigns the next free id to post and stores it.
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int) (*models.Post, error)
	// List returns every post in insertion order.
	List(ctx context.Context) ([]*models.Post, error)
	// Update replaces a stored post. It returns ErrNotFound if post.ID is unknown.
	Update(ctx context.Context, post *models.Post) error
	// Upsert stores post under post.ID, creating it if absent. The existence
	// check and the write are atomic.
	Upsert(ctx context.Context, post *models.Post) (created bool, err error)
	Delete(ctx context.Context, id int) error
}

// CommentFilter narrows a comment listing. A nil PostID matches everything.
type CommentFilter struct {
	PostID *int
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int) (*models.Comment, error)
	List(ctx context.Context, filter CommentFilter) ([]*models.Comment, error)
	// ListByPost returns the comments referencing postID in insertion order.
	ListByPost(ctx context.Context, postID int) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Upsert(ctx context.Context, comment *models.Comment) (created bool, err error)
	Delete(ctx context.Context, id int) error
}
