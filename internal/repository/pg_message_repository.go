package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nexora/backend/internal/model"
)

const messageColumns = `id, name, email, subject, message, status, created_at, updated_at`

// PgMessageRepository is the PostgreSQL implementation of MessageRepository.
type PgMessageRepository struct {
	pool *pgxpool.Pool
}

// NewPgMessageRepository creates a PgMessageRepository backed by the given pool.
func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

// Ensure PgMessageRepository implements MessageRepository at compile time.
var _ MessageRepository = (*PgMessageRepository)(nil)

// Create inserts a new contact_messages row. Timestamps are taken back from
// the RETURNING clause so they carry the database's precision.
func (r *PgMessageRepository) Create(ctx context.Context, msg *model.Message) error {
	if err := prepareCreate(msg, time.Now().UTC()); err != nil {
		return err
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO contact_messages (id, name, email, subject, message, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		 RETURNING created_at, updated_at`,
		msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message, string(msg.Status), msg.CreatedAt,
	).Scan(&msg.CreatedAt, &msg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	return nil
}

// List returns contact messages filtered by status, newest first, paginated
// by page/limit.
func (r *PgMessageRepository) List(ctx context.Context, opts model.MessageListOptions) (*model.MessagePage, error) {
	opts = opts.Normalized()

	var args []any
	where := ""
	if opts.Status != "" {
		args = append(args, string(opts.Status))
		where = "WHERE status = $1"
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contact_messages `+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count contact messages: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM contact_messages %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d`, messageColumns, where, len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*model.Message, 0, opts.Limit)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contact messages: %w", err)
	}
	return &model.MessagePage{Messages: messages, Total: total}, nil
}

// DeleteByID hard-deletes a message and returns the removed row.
func (r *PgMessageRepository) DeleteByID(ctx context.Context, id string) (*model.Message, error) {
	key, ok := canonicalID(id)
	if !ok {
		return nil, ErrNotFound
	}
	row := r.pool.QueryRow(ctx,
		`DELETE FROM contact_messages WHERE id = $1 RETURNING `+messageColumns, key)
	m, err := scanMessage(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete contact message: %w", err)
	}
	return m, nil
}

// UpdateStatus changes the status of a message. created_at is never touched.
func (r *PgMessageRepository) UpdateStatus(ctx context.Context, id string, status model.MessageStatus) (*model.Message, error) {
	if !status.Valid() {
		return nil, invalidStatus()
	}
	key, ok := canonicalID(id)
	if !ok {
		return nil, ErrNotFound
	}
	row := r.pool.QueryRow(ctx,
		`UPDATE contact_messages SET status = $2, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+messageColumns, key, string(status))
	m, err := scanMessage(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update contact message status: %w", err)
	}
	return m, nil
}

func scanMessage(row pgx.Row) (*model.Message, error) {
	var m model.Message
	var status string
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &status, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.Status = model.MessageStatus(status)
	return &m, nil
}
