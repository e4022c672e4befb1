// File: internal/services/chat_service_test.go
package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuchat/internal/domain"
)

func TestChatCreateDefaultsTitle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.chats.Create(ctx, "   ", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultChatTitle, created.Title)
	assert.Empty(t, created.Messages)
	assert.Nil(t, created.ProjectID)
}

func TestChatCreateRejectsMissingProject(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	missing := uint(42)
	_, err := env.chats.Create(ctx, "orphan", &missing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChatListNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.chats.Create(ctx, "first", nil)
	require.NoError(t, err)
	second, err := env.chats.Create(ctx, "second", nil)
	require.NoError(t, err)

	chats, err := env.chats.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, second.ID, chats[0].ID)
	assert.Equal(t, first.ID, chats[1].ID)
}

func TestChatSetMessagesRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.chats.Create(ctx, "", nil)
	require.NoError(t, err)

	msgs := []domain.Message{
		domain.NewTextMessage(domain.RoleUser, "what is this paper about?"),
		domain.NewTextMessage(domain.RoleAssistant, "it studies reactor cooling"),
		domain.NewTextMessage(domain.RoleFollowups, "How was it measured?"),
	}
	require.NoError(t, env.chats.SetMessages(ctx, created.ID, msgs))

	loaded, err := env.chats.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Messages, 3)
	text, ok := loaded.Messages[2].Text()
	require.True(t, ok)
	assert.Equal(t, "How was it measured?", text)
	assert.Equal(t, domain.RoleFollowups, loaded.Messages[2].Role)
}

func TestChatSetMessagesRejectsUnknownRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.chats.Create(ctx, "", nil)
	require.NoError(t, err)

	err = env.chats.SetMessages(ctx, created.ID, []domain.Message{
		domain.NewTextMessage("moderator", "nope"),
	})
	var vErr *domain.ValidationError
	assert.True(t, errors.As(err, &vErr))

	// The stored log is untouched.
	loaded, err := env.chats.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Messages)
}

func TestChatSetMessagesMissingChat(t *testing.T) {
	env := newTestEnv(t)

	err := env.chats.SetMessages(context.Background(), 99, []domain.Message{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChatCorruptLogReadsAsEmpty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.chats.Create(ctx, "damaged", nil)
	require.NoError(t, err)
	require.NoError(t, env.db.Exec(`UPDATE chats SET messages = 'not json' WHERE id = ?`, created.ID).Error)

	loaded, err := env.chats.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.NotNil(t, loaded.Messages)
	assert.Empty(t, loaded.Messages)

	chats, err := env.chats.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Empty(t, chats[0].Messages)
}

func TestChatRename(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.chats.Create(ctx, "before", nil)
	require.NoError(t, err)

	require.NoError(t, env.chats.Rename(ctx, created.ID, "after"))
	loaded, err := env.chats.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", loaded.Title)

	var vErr *domain.ValidationError
	err = env.chats.Rename(ctx, created.ID, "  ")
	assert.True(t, errors.As(err, &vErr))
}

func TestChatDeleteCascadesToAttachments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.chats.Create(ctx, "", nil)
	require.NoError(t, err)
	_, err = env.files.Upload(ctx, created.ID, []byte("%PDF-1.4"), "a.pdf", "application/pdf")
	require.NoError(t, err)

	require.NoError(t, env.chats.Delete(ctx, created.ID))

	var remaining int64
	require.NoError(t, env.db.Table("pdfs").Count(&remaining).Error)
	assert.Zero(t, remaining)
}

func TestChatExportHTML(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.chats.Create(ctx, "Cooling Paper", nil)
	require.NoError(t, err)
	require.NoError(t, env.chats.SetMessages(ctx, created.ID, []domain.Message{
		domain.NewTextMessage(domain.RoleUser, "summarize it"),
		domain.NewTextMessage(domain.RoleAssistant, "It covers **reactor cooling**."),
	}))

	html, err := env.chats.ExportHTML(ctx, created.ID)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h1>Cooling Paper</h1>")
	assert.Contains(t, string(html), "<strong>reactor cooling</strong>")
}
