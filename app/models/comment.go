package models

import (
	"sort"
	"time"
)

// NewComment builds an unsaved comment from input.
func NewComment(in CommentInput) *Comment {
	c := &Comment{}
	c.Apply(in)
	return c
}

// Apply replaces every writable field with the input, including nil ones.
func (c *Comment) Apply(in CommentInput) {
	c.PostID = in.PostID
	c.Name = in.Name
	c.Email = in.Email
	c.Body = in.Body
}

// BeforeCreate sets up the timestamps of a new comment
func (c *Comment) BeforeCreate() {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	c.UpdatedAt = c.CreatedAt
}

// BeforeUpdate keeps the creation time of the stored version and bumps
// UpdatedAt.
func (c *Comment) BeforeUpdate(existing *Comment) {
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
}

// BelongsTo reports whether the comment references the given post id.
func (c *Comment) BelongsTo(postID int) bool {
	return c.PostID != nil && *c.PostID == postID
}

// SortComments orders comments by insertion: creation time, then id.
func SortComments(comments []*Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		return inserted(comments[i].CreatedAt, comments[i].ID, comments[j].CreatedAt, comments[j].ID)
	})
}
