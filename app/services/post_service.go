package services

import (
	"context"
	"errors"
	"fmt"

	"postboard/app/models"
	"postboard/app/repositories"
)

// PostService handles business logic for blog posts
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// CreatePost stores a new post under the next auto-assigned id
func (s *PostService) CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error) {
	post := models.NewPost(in)
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// GetPost retrieves a post by ID. A missing post yields repositories.ErrNotFound.
func (s *PostService) GetPost(ctx context.Context, id int) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// ListPosts returns every post in insertion order
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// UpsertPost creates the post with the given id or replaces the stored one.
// Every field of in overwrites the stored value, so omitted fields are cleared.
func (s *PostService) UpsertPost(ctx context.Context, id int, in models.PostInput) (*models.Post, bool, error) {
	post := models.NewPost(in)
	post.ID = id
	created, err := s.postRepo.Upsert(ctx, post)
	if err != nil {
		return nil, false, fmt.Errorf("upsert post %d: %w", id, err)
	}
	return post, created, nil
}

// DeletePost deletes a post. Its comments are kept.
func (s *PostService) DeletePost(ctx context.Context, id int) error {
	return s.postRepo.Delete(ctx, id)
}

// ListPostComments returns the comments of a post. An unknown post has no
// comments rather than being an error.
func (s *PostService) ListPostComments(ctx context.Context, id int) ([]*models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return []*models.Comment{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}

	comments, err := s.commentRepo.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments for post %d: %w", post.ID, err)
	}
	return comments, nil
}
