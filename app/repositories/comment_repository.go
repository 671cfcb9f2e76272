package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"postboard/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCommentRepository implements CommentRepository using BadgerDB.
// Comments are stored under comment:<id>; a key-only index under
// idx:post_comments:<postID>:<id> serves post traversal.
type BadgerCommentRepository struct {
	store *BadgerStore
}

// NewBadgerCommentRepository creates a new BadgerCommentRepository
func NewBadgerCommentRepository(store *BadgerStore) *BadgerCommentRepository {
	return store.Comments()
}

// Create creates a new comment
func (r *BadgerCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.store.update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, CommentSeqKey)
		if err != nil {
			return err
		}
		comment.ID = id
		comment.BeforeCreate()
		return putComment(txn, comment, nil)
	})
}

// GetByID retrieves a comment by ID
func (r *BadgerCommentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	var comment models.Comment
	err := r.store.view(func(txn *badger.Txn) error {
		return getEntity(txn, commentKey(id), &comment)
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// List retrieves all comments, or those matching the filter
func (r *BadgerCommentRepository) List(ctx context.Context, filter CommentFilter) ([]*models.Comment, error) {
	if filter.PostID != nil {
		return r.ListByPost(ctx, *filter.PostID)
	}

	comments := []*models.Comment{}
	err := r.store.view(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(CommentKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var comment models.Comment
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &comment)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal comment: %w", err)
			}
			comments = append(comments, &comment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	models.SortComments(comments)
	return comments, nil
}

// ListByPost retrieves all comments for a post
func (r *BadgerCommentRepository) ListByPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	comments := []*models.Comment{}
	err := r.store.view(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := postCommentsPrefix(postID)
		var ids []int
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id, err := strconv.Atoi(string(it.Item().Key()[len(prefix):]))
			if err != nil {
				return fmt.Errorf("corrupt comment index key %q: %w", it.Item().Key(), err)
			}
			ids = append(ids, id)
		}

		for _, id := range ids {
			var comment models.Comment
			if err := getEntity(txn, commentKey(id), &comment); err != nil {
				return fmt.Errorf("load comment %d: %w", id, err)
			}
			comments = append(comments, &comment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	models.SortComments(comments)
	return comments, nil
}

// Update updates an existing comment
func (r *BadgerCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.store.update(func(txn *badger.Txn) error {
		var existing models.Comment
		if err := getEntity(txn, commentKey(comment.ID), &existing); err != nil {
			return err
		}
		comment.BeforeUpdate(&existing)
		return putComment(txn, comment, &existing)
	})
}

// Upsert creates the comment under its own ID or replaces the stored one
func (r *BadgerCommentRepository) Upsert(ctx context.Context, comment *models.Comment) (bool, error) {
	created := false
	err := r.store.update(func(txn *badger.Txn) error {
		var existing models.Comment
		err := getEntity(txn, commentKey(comment.ID), &existing)
		switch {
		case errors.Is(err, ErrNotFound):
			created = true
			comment.BeforeCreate()
			if err := bumpSequence(txn, CommentSeqKey, comment.ID); err != nil {
				return err
			}
			return putComment(txn, comment, nil)
		case err != nil:
			return err
		default:
			comment.BeforeUpdate(&existing)
			return putComment(txn, comment, &existing)
		}
	})
	return created, err
}

// Delete deletes a comment by ID
func (r *BadgerCommentRepository) Delete(ctx context.Context, id int) error {
	return r.store.update(func(txn *badger.Txn) error {
		var existing models.Comment
		if err := getEntity(txn, commentKey(id), &existing); err != nil {
			return err
		}
		if existing.PostID != nil {
			if err := txn.Delete(postCommentsKey(*existing.PostID, id)); err != nil {
				return err
			}
		}
		return txn.Delete(commentKey(id))
	})
}

// putComment writes comment and moves its index entry when the referenced
// post changed.
func putComment(txn *badger.Txn, comment, previous *models.Comment) error {
	if previous != nil && previous.PostID != nil && !comment.BelongsTo(*previous.PostID) {
		if err := txn.Delete(postCommentsKey(*previous.PostID, comment.ID)); err != nil {
			return err
		}
	}
	if comment.PostID != nil {
		if err := txn.Set(postCommentsKey(*comment.PostID, comment.ID), nil); err != nil {
			return err
		}
	}
	return setEntity(txn, commentKey(comment.ID), comment)
}
