package remote

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/krishnakoushik192/travel-journal/internal/journal"
)

// Postgres pushes journal data to a Postgres-backed remote (the hosted
// backend exposes plain tables `journal` and `journal_images`).
type Postgres struct {
	pool *pgxpool.Pool
}

var _ Store = (*Postgres)(nil)

// NewPostgres connects a pool to the given DSN. The caller MUST call
// Close when done.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create remote pool: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// Ping implements Store.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// UpsertEntries implements Store. All entries go through one
// transaction so a partial batch never lands.
func (p *Postgres) UpsertEntries(ctx context.Context, entries []journal.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin remote transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, e := range entries {
		// Tags are a text[] column remotely; pgx maps []string natively.
		batch.Queue(`
			INSERT INTO journal (id, title, description, tags, date_time, latitude, longitude)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE SET
				title = excluded.title,
				description = excluded.description,
				tags = excluded.tags,
				date_time = excluded.date_time,
				latitude = excluded.latitude,
				longitude = excluded.longitude`,
			e.ID, e.Title, e.Description, e.Tags, e.DateTime, e.Latitude, e.Longitude,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("failed to upsert entry %s: %w", entries[i].ID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close upsert batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit entry batch: %w", err)
	}

	return nil
}

// DeleteImages implements Store.
func (p *Postgres) DeleteImages(ctx context.Context, journalID string) error {
	_, err := p.pool.Exec(ctx, "DELETE FROM journal_images WHERE journal_id = $1", journalID)
	if err != nil {
		return fmt.Errorf("failed to delete remote images for %s: %w", journalID, err)
	}
	return nil
}

// InsertImages implements Store.
func (p *Postgres) InsertImages(ctx context.Context, journalID string, images []journal.Image) error {
	if len(images) == 0 {
		return nil
	}

	rows := make([][]interface{}, len(images))
	for i, img := range images {
		rows[i] = []interface{}{journalID, img.URL, i}
	}

	_, err := p.pool.CopyFrom(ctx,
		pgx.Identifier{"journal_images"},
		[]string{"journal_id", "image_url", "image_order"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to insert remote images for %s: %w", journalID, err)
	}

	return nil
}
