package repositories

import (
	"context"
	"errors"
	"fmt"

	"postboard/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	store *BadgerStore
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(store *BadgerStore) *BadgerPostRepository {
	return store.Posts()
}

// Create creates a new post
func (r *BadgerPostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.store.update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, PostSeqKey)
		if err != nil {
			return err
		}
		post.ID = id
		post.BeforeCreate()
		return setEntity(txn, postKey(post.ID), post)
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	var post models.Post
	err := r.store.view(func(txn *badger.Txn) error {
		return getEntity(txn, postKey(id), &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves all posts in insertion order
func (r *BadgerPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	posts := []*models.Post{}
	err := r.store.view(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var post models.Post
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal post: %w", err)
			}
			posts = append(posts, &post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	models.SortPosts(posts)
	return posts, nil
}

// Update updates an existing post
func (r *BadgerPostRepository) Update(ctx context.Context, post *models.Post) error {
	return r.store.update(func(txn *badger.Txn) error {
		var existing models.Post
		if err := getEntity(txn, postKey(post.ID), &existing); err != nil {
			return err
		}
		post.BeforeUpdate(&existing)
		return setEntity(txn, postKey(post.ID), post)
	})
}

// Upsert creates the post under its own ID or replaces the stored one
func (r *BadgerPostRepository) Upsert(ctx context.Context, post *models.Post) (bool, error) {
	created := false
	err := r.store.update(func(txn *badger.Txn) error {
		var existing models.Post
		err := getEntity(txn, postKey(post.ID), &existing)
		switch {
		case errors.Is(err, ErrNotFound):
			created = true
			post.BeforeCreate()
			if err := bumpSequence(txn, PostSeqKey, post.ID); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			post.BeforeUpdate(&existing)
		}
		return setEntity(txn, postKey(post.ID), post)
	})
	return created, err
}

// Delete deletes a post by ID. Comments referencing it are left in place.
func (r *BadgerPostRepository) Delete(ctx context.Context, id int) error {
	return r.store.update(func(txn *badger.Txn) error {
		key := postKey(id)

		// Verify post exists
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return txn.Delete(key)
	})
}
