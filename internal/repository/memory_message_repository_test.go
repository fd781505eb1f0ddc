package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nexora/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMessage(i int) *model.Message {
	return &model.Message{
		Name:    fmt.Sprintf("Sender %d", i),
		Email:   fmt.Sprintf("sender%d@example.com", i),
		Subject: fmt.Sprintf("Subject %d", i),
		Message: fmt.Sprintf("Message body number %d", i),
	}
}

// fixedClock returns a clock that advances one second per call.
func fixedClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func newTestRepo() *MemoryMessageRepository {
	repo := NewMemoryMessageRepository()
	repo.now = fixedClock()
	return repo
}

func TestMemoryRepo_CreateAssignsDefaults(t *testing.T) {
	repo := newTestRepo()
	msg := &model.Message{
		Name:    "  Alice ",
		Email:   " Alice@Example.com ",
		Subject: "Hello there",
		Message: "A long enough message",
	}

	require.NoError(t, repo.Create(context.Background(), msg))

	_, err := uuid.Parse(msg.ID)
	assert.NoError(t, err, "id should be a UUID")
	assert.Equal(t, model.StatusPending, msg.Status)
	assert.Equal(t, "Alice", msg.Name)
	assert.Equal(t, "alice@example.com", msg.Email)
	assert.False(t, msg.CreatedAt.IsZero())
	assert.Equal(t, msg.CreatedAt, msg.UpdatedAt)
}

func TestMemoryRepo_CreateRejectsInvalid(t *testing.T) {
	repo := newTestRepo()
	msg := &model.Message{Name: "Bob", Email: "not-an-email", Subject: "S", Message: "M"}

	err := repo.Create(context.Background(), msg)

	var verrs model.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("email"))

	page, err := repo.List(context.Background(), model.MessageListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total, "invalid message must not be persisted")
}

func TestMemoryRepo_ListNewestFirstWithPagination(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()
	var ids []string
	for i := 0; i < 15; i++ {
		m := newTestMessage(i)
		require.NoError(t, repo.Create(ctx, m))
		ids = append(ids, m.ID)
	}

	first, err := repo.List(ctx, model.MessageListOptions{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 15, first.Total)
	require.Len(t, first.Messages, 10)
	assert.Equal(t, ids[14], first.Messages[0].ID, "newest message first")
	assert.Equal(t, 2, model.Pages(first.Total, 10))

	second, err := repo.List(ctx, model.MessageListOptions{Page: 2, Limit: 10})
	require.NoError(t, err)
	require.Len(t, second.Messages, 5)
	assert.Equal(t, ids[0], second.Messages[4].ID, "oldest message last")

	beyond, err := repo.List(ctx, model.MessageListOptions{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond.Messages)
	assert.NotNil(t, beyond.Messages)
	assert.Equal(t, 15, beyond.Total)
}

func TestMemoryRepo_ListFiltersByStatus(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()
	var rejected []string
	for i := 0; i < 6; i++ {
		m := newTestMessage(i)
		require.NoError(t, repo.Create(ctx, m))
		if i%2 == 0 {
			_, err := repo.UpdateStatus(ctx, m.ID, model.StatusRejected)
			require.NoError(t, err)
			rejected = append(rejected, m.ID)
		}
	}

	page, err := repo.List(ctx, model.MessageListOptions{Status: model.StatusRejected})
	require.NoError(t, err)
	assert.Equal(t, len(rejected), page.Total)
	for _, m := range page.Messages {
		assert.Equal(t, model.StatusRejected, m.Status)
		assert.Contains(t, rejected, m.ID)
	}
}

func TestMemoryRepo_DeleteByID(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()
	m := newTestMessage(1)
	require.NoError(t, repo.Create(ctx, m))

	deleted, err := repo.DeleteByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, deleted.ID)

	page, err := repo.List(ctx, model.MessageListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)

	_, err = repo.DeleteByID(ctx, m.ID)
	assert.ErrorIs(t, err, ErrNotFound, "second delete should report not found")
}

func TestMemoryRepo_DeleteByID_MalformedID(t *testing.T) {
	repo := newTestRepo()

	_, err := repo.DeleteByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepo_UpdateStatus(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()
	m := newTestMessage(1)
	require.NoError(t, repo.Create(ctx, m))

	updated, err := repo.UpdateStatus(ctx, m.ID, model.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAccepted, updated.Status)
	assert.Equal(t, m.CreatedAt, updated.CreatedAt, "createdAt is immutable")
	assert.True(t, updated.UpdatedAt.After(m.UpdatedAt), "updatedAt is bumped")

	_, err = repo.UpdateStatus(ctx, m.ID, "archived")
	var verrs model.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = repo.UpdateStatus(ctx, uuid.NewString(), model.StatusRejected)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepo_ReturnsCopies(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()
	m := newTestMessage(1)
	require.NoError(t, repo.Create(ctx, m))

	m.Subject = "mutated by caller"
	page, err := repo.List(ctx, model.MessageListOptions{})
	require.NoError(t, err)
	require.Len(t, page.Messages, 1)
	assert.Equal(t, "Subject 1", page.Messages[0].Subject)
}

func TestMemoryRepo_ConcurrentDeletes(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()
	m := newTestMessage(1)
	require.NoError(t, repo.Create(ctx, m))

	var wg sync.WaitGroup
	results := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.DeleteByID(ctx, m.ID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrNotFound):
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one delete should win")
}

func TestMemoryRepo_CanceledContext(t *testing.T) {
	repo := newTestRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Create(ctx, newTestMessage(1))
	assert.ErrorIs(t, err, context.Canceled)
}
