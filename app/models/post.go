package models

import (
	"sort"
	"time"
)

// NewPost builds an unsaved post from input.
func NewPost(in PostInput) *Post {
	p := &Post{}
	p.Apply(in)
	return p
}

// Apply replaces every writable field with the input, including nil ones.
func (p *Post) Apply(in PostInput) {
	p.Title = in.Title
	p.Body = in.Body
}

// BeforeCreate sets up the timestamps of a new post
func (p *Post) BeforeCreate() {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p.UpdatedAt = p.CreatedAt
}

// BeforeUpdate keeps the creation time of the stored version and bumps
// UpdatedAt.
func (p *Post) BeforeUpdate(existing *Post) {
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()
}

// SortPosts orders posts by insertion: creation time, then id.
func SortPosts(posts []*Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return inserted(posts[i].CreatedAt, posts[i].ID, posts[j].CreatedAt, posts[j].ID)
	})
}

func inserted(ti time.Time, idi int, tj time.Time, idj int) bool {
	if !ti.Equal(tj) {
		return ti.Before(tj)
	}
	return idi < idj
}
