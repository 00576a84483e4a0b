package contact

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store saves validated contact form submissions
type Store interface {
	Save(ctx context.Context, s *Submission) error

	// Ping checks the store is available (used by the readiness check)
	Ping(ctx context.Context) error
}

// PostgresStore saves submissions to the contact_submissions table (see internal/database/migrations)
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const insertSubmission = `
INSERT INTO contact_submissions (id, name, email, company, topic, message, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

func (p *PostgresStore) Save(ctx context.Context, s *Submission) error {
	_, err := p.pool.Exec(ctx, insertSubmission,
		s.ID,
		s.Name,
		s.Email,
		s.Company,
		s.Topic,
		s.Message,
		s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("could not save contact submission %s: %w", s.ID, err)
	}
	return nil
}

func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// LogStore records submissions in the server log only - used when no database is configured
type LogStore struct {
	logger *slog.Logger
}

func NewLogStore(logger *slog.Logger) *LogStore {
	return &LogStore{logger: logger}
}

func (l *LogStore) Save(ctx context.Context, s *Submission) error {
	l.logger.LogAttrs(ctx, slog.LevelInfo, "contact submission received",
		slog.String("submission_id", s.ID.String()),
		slog.String("email", s.Email),
		slog.String("topic", s.Topic),
		slog.Int("message_length", len(s.Message)),
	)
	return nil
}

func (l *LogStore) Ping(ctx context.Context) error {
	return nil
}
