package commentapp

import (
	"context"
	"path/filepath"
	"testing"

	"yatube/internal/adapters/database"
	"yatube/internal/config"
	postEntity "yatube/internal/core/post"
	userEntity "yatube/internal/core/user"
	postPort "yatube/internal/ports/post"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAddComment(t *testing.T) {
	db, err := config.OpenDB("sqlite", filepath.Join(t.TempDir(), "comments.db"), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = config.CloseDB(db) })

	leo := &userEntity.User{Username: "leo", Email: "leo@example.com", Password: "hash"}
	require.NoError(t, db.Create(leo).Error)
	post := &postEntity.Post{Text: "commented", AuthorID: leo.ID}
	require.NoError(t, db.Omit("Author", "Group").Create(post).Error)

	s := NewCommentService(database.NewCommentRepositoryDatabase(db), database.NewPostRepositoryDatabase(db), zap.NewNop())
	ctx := context.Background()

	_, err = s.AddComment(ctx, post.ID, leo.ID.String(), "   ")
	assert.ErrorIs(t, err, postPort.ErrEmptyText)

	_, err = s.AddComment(ctx, 999, leo.ID.String(), "hello")
	assert.ErrorIs(t, err, postPort.ErrPostNotFound)

	first, err := s.AddComment(ctx, post.ID, leo.ID.String(), "  first  ")
	require.NoError(t, err)
	assert.Equal(t, "first", first.Text)
	_, err = s.AddComment(ctx, post.ID, leo.ID.String(), "second")
	require.NoError(t, err)

	comments, err := s.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text)
	assert.Equal(t, "leo", comments[0].Author.Username)
}
