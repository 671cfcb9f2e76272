package services

import (
	"context"
	"testing"

	"postboard/app/models"
	"postboard/app/repositories"
	"postboard/app/repositories/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService(t *testing.T) {
	ctx := context.Background()
	service := NewCommentService(memory.NewCommentRepository())

	t.Run("create comment", func(t *testing.T) {
		comment, err := service.CreateComment(ctx, models.CommentInput{
			PostID: models.Int(1),
			Name:   models.String("Test Author"),
			Email:  models.String("author@example.com"),
			Body:   models.String("Test Comment Content"),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, comment.ID)
		assert.False(t, comment.CreatedAt.IsZero())
	})

	t.Run("get comment", func(t *testing.T) {
		comment, err := service.GetComment(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Test Author", *comment.Name)
		assert.Equal(t, "Test Comment Content", *comment.Body)
		assert.Equal(t, 1, *comment.PostID)
	})

	t.Run("post is not required to exist", func(t *testing.T) {
		comment, err := service.CreateComment(ctx, models.CommentInput{PostID: models.Int(999)})
		require.NoError(t, err)
		assert.Equal(t, 999, *comment.PostID)
	})

	t.Run("list comments", func(t *testing.T) {
		all, err := service.ListComments(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		filtered, err := service.ListComments(ctx, models.Int(999))
		require.NoError(t, err)
		require.Len(t, filtered, 1)
		assert.Equal(t, 2, filtered[0].ID)

		none, err := service.ListComments(ctx, models.Int(5))
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("upsert creates absent comment", func(t *testing.T) {
		comment, created, err := service.UpsertComment(ctx, 10, models.CommentInput{
			PostID: models.Int(1),
			Name:   models.String("A"),
			Email:  models.String("a@x.io"),
			Body:   models.String("nice"),
		})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, 10, comment.ID)
	})

	t.Run("upsert replaces comment", func(t *testing.T) {
		comment, created, err := service.UpsertComment(ctx, 10, models.CommentInput{Body: models.String("edited")})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Nil(t, comment.PostID)
		assert.Nil(t, comment.Name)
		assert.Nil(t, comment.Email)
		assert.Equal(t, "edited", *comment.Body)
	})

	t.Run("delete comment", func(t *testing.T) {
		require.NoError(t, service.DeleteComment(ctx, 1))

		_, err := service.GetComment(ctx, 1)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
		assert.ErrorIs(t, service.DeleteComment(ctx, 1), repositories.ErrNotFound)
	})
}
