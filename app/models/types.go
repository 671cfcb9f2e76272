package models

import "time"

// Post represents a blog post. Title and Body are nullable.
type Post struct {
	ID        int       `json:"id"`
	Title     *string   `json:"title"`
	Body      *string   `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Comment represents a comment on a blog post. PostID is stored as given and
// is not required to reference an existing post.
type Comment struct {
	ID        int       `json:"id"`
	PostID    *int      `json:"postId"`
	Name      *string   `json:"name"`
	Email     *string   `json:"email"`
	Body      *string   `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostInput holds the client-writable fields of a post. A nil field was
// either omitted or sent as null; both clear the stored value.
type PostInput struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

// CommentInput holds the client-writable fields of a comment.
type CommentInput struct {
	PostID *int    `json:"postId"`
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Body   *string `json:"body"`
}

// String returns a pointer to s.
func String(s string) *string { return &s }

// Int returns a pointer to i.
func Int(i int) *int { return &i }
