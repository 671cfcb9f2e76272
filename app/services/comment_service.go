package services

import (
	"context"
	"fmt"

	"postboard/app/models"
	"postboard/app/repositories"
)

// CommentService handles business logic for comments. It never checks that
// a comment's postId names an existing post.
type CommentService struct {
	commentRepo repositories.CommentRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
	}
}

// CreateComment stores a new comment under the next auto-assigned id
func (s *CommentService) CreateComment(ctx context.Context, in models.CommentInput) (*models.Comment, error) {
	comment := models.NewComment(in)
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// GetComment retrieves a comment by ID
func (s *CommentService) GetComment(ctx context.Context, id int) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

// ListComments returns all comments, or only those of postID when it is set
func (s *CommentService) ListComments(ctx context.Context, postID *int) ([]*models.Comment, error) {
	comments, err := s.commentRepo.List(ctx, repositories.CommentFilter{PostID: postID})
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// UpsertComment creates the comment with the given id or replaces the stored
// one, clearing fields missing from in.
func (s *CommentService) UpsertComment(ctx context.Context, id int, in models.CommentInput) (*models.Comment, bool, error) {
	comment := models.NewComment(in)
	comment.ID = id
	created, err := s.commentRepo.Upsert(ctx, comment)
	if err != nil {
		return nil, false, fmt.Errorf("upsert comment %d: %w", id, err)
	}
	return comment, created, nil
}

// DeleteComment deletes a comment
func (s *CommentService) DeleteComment(ctx context.Context, id int) error {
	return s.commentRepo.Delete(ctx, id)
}
