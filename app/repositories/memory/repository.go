// Package memory provides map-backed repositories for tests and the
// "memory" store driver. Nothing survives a restart.
package memory

import (
	"context"
	"math"
	"sync"

	"postboard/app/models"
	"postboard/app/repositories"
)

type PostRepository struct {
	posts  map[int]models.Post
	lastID int
	mutex  sync.RWMutex
}

type CommentRepository struct {
	comments map[int]models.Comment
	lastID   int
	mutex    sync.RWMutex
}

var (
	_ repositories.PostRepository    = (*PostRepository)(nil)
	_ repositories.CommentRepository = (*CommentRepository)(nil)
)

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts: make(map[int]models.Post),
	}
}

// Clear drops every post and resets the id sequence.
func (m *PostRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.posts = make(map[int]models.Post)
	m.lastID = 0
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		comments: make(map[int]models.Comment),
	}
}

// Clear drops every comment and resets the id sequence.
func (m *CommentRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.comments = make(map[int]models.Comment)
	m.lastID = 0
}

// PostRepository implementation
func (m *PostRepository) Create(ctx context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.lastID == math.MaxInt {
		return repositories.ErrSequenceExhausted
	}
	m.lastID++
	post.ID = m.lastID
	post.BeforeCreate()
	m.posts[post.ID] = *post
	return nil
}

func (m *PostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return &post, nil
}

func (m *PostRepository) List(ctx context.Context) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	posts := make([]*models.Post, 0, len(m.posts))
	for _, post := range m.posts {
		post := post
		posts = append(posts, &post)
	}
	models.SortPosts(posts)
	return posts, nil
}

func (m *PostRepository) Update(ctx context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	existing, exists := m.posts[post.ID]
	if !exists {
		return repositories.ErrNotFound
	}
	post.BeforeUpdate(&existing)
	m.posts[post.ID] = *post
	return nil
}

func (m *PostRepository) Upsert(ctx context.Context, post *models.Post) (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	existing, exists := m.posts[post.ID]
	if exists {
		post.BeforeUpdate(&existing)
	} else {
		post.BeforeCreate()
		if post.ID > m.lastID {
			m.lastID = post.ID
		}
	}
	m.posts[post.ID] = *post
	return !exists, nil
}

func (m *PostRepository) Delete(ctx context.Context, id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

// CommentRepository implementation
func (m *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.lastID == math.MaxInt {
		return repositories.ErrSequenceExhausted
	}
	m.lastID++
	comment.ID = m.lastID
	comment.BeforeCreate()
	m.comments[comment.ID] = *comment
	return nil
}

func (m *CommentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comment, exists := m.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return &comment, nil
}

func (m *CommentRepository) List(ctx context.Context, filter repositories.CommentFilter) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comments := []*models.Comment{}
	for _, comment := range m.comments {
		if filter.PostID != nil && !comment.BelongsTo(*filter.PostID) {
			continue
		}
		comment := comment
		comments = append(comments, &comment)
	}
	models.SortComments(comments)
	return comments, nil
}

func (m *CommentRepository) ListByPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	return m.List(ctx, repositories.CommentFilter{PostID: &postID})
}

func (m *CommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	existing, exists := m.comments[comment.ID]
	if !exists {
		return repositories.ErrNotFound
	}
	comment.BeforeUpdate(&existing)
	m.comments[comment.ID] = *comment
	return nil
}

func (m *CommentRepository) Upsert(ctx context.Context, comment *models.Comment) (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	existing, exists := m.comments[comment.ID]
	if exists {
		comment.BeforeUpdate(&existing)
	} else {
		comment.BeforeCreate()
		if comment.ID > m.lastID {
			m.lastID = comment.ID
		}
	}
	m.comments[comment.ID] = *comment
	return !exists, nil
}

func (m *CommentRepository) Delete(ctx context.Context, id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.comments[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}
