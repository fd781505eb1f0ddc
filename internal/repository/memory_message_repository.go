package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nexora/backend/internal/model"
)

// MemoryMessageRepository keeps messages in process memory. It backs
// STORE_BACKEND=memory and service tests.
type MemoryMessageRepository struct {
	mu      sync.RWMutex
	seq     uint64
	records map[string]*memoryRecord
	now     func() time.Time
}

type memoryRecord struct {
	msg model.Message
	seq uint64
}

// NewMemoryMessageRepository creates an empty in-memory repository.
func NewMemoryMessageRepository() *MemoryMessageRepository {
	return &MemoryMessageRepository{
		records: make(map[string]*memoryRecord),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

var (
	_ MessageRepository = (*MemoryMessageRepository)(nil)
	_ DB                = (*MemoryMessageRepository)(nil)
)

// Ping always succeeds.
func (r *MemoryMessageRepository) Ping(context.Context) error { return nil }

func (r *MemoryMessageRepository) Create(ctx context.Context, msg *model.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := prepareCreate(msg, r.now()); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.records[msg.ID] = &memoryRecord{msg: *msg, seq: r.seq}
	return nil
}

func (r *MemoryMessageRepository) List(ctx context.Context, opts model.MessageListOptions) (*model.MessagePage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts = opts.Normalized()

	r.mu.RLock()
	matched := make([]*memoryRecord, 0, len(r.records))
	for _, rec := range r.records {
		if opts.Status == "" || rec.msg.Status == opts.Status {
			matched = append(matched, rec)
		}
	}
	r.mu.RUnlock()

	// Newest first; insertion order breaks timestamp ties.
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.msg.CreatedAt.Equal(b.msg.CreatedAt) {
			return a.msg.CreatedAt.After(b.msg.CreatedAt)
		}
		return a.seq > b.seq
	})

	page := &model.MessagePage{Messages: []*model.Message{}, Total: len(matched)}
	start := opts.Offset()
	if start >= len(matched) {
		return page, nil
	}
	end := min(start+opts.Limit, len(matched))
	for _, rec := range matched[start:end] {
		m := rec.msg
		page.Messages = append(page.Messages, &m)
	}
	return page, nil
}

func (r *MemoryMessageRepository) DeleteByID(ctx context.Context, id string) (*model.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, ok := canonicalID(id)
	if !ok {
		return nil, ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[key]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.records, key)
	m := rec.msg
	return &m, nil
}

func (r *MemoryMessageRepository) UpdateStatus(ctx context.Context, id string, status model.MessageStatus) (*model.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, invalidStatus()
	}
	key, ok := canonicalID(id)
	if !ok {
		return nil, ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[key]
	if !ok {
		return nil, ErrNotFound
	}
	rec.msg.Status = status
	rec.msg.UpdatedAt = r.now()
	m := rec.msg
	return &m, nil
}
