package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/Vovarama1992/voicescribe/internal/models"
	"github.com/Vovarama1992/voicescribe/internal/ports"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresTranscriptionRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresTranscriptionRepo(pool *pgxpool.Pool) ports.TranscriptionRepository {
	return &PostgresTranscriptionRepo{pool: pool}
}

func (r *PostgresTranscriptionRepo) Insert(ctx context.Context, t *models.Transcription) (*models.Transcription, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	query := `
		INSERT INTO transcription (id, transcription, word_count, file_name, file_size, type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	row := r.pool.QueryRow(ctx, query, t.ID, t.Text, t.WordCount, t.FileName, t.FileSize, t.Type)
	if err := row.Scan(&t.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert transcription: %w", err)
	}
	return t, nil
}

func (r *PostgresTranscriptionRepo) GetByID(ctx context.Context, id string) (*models.Transcription, error) {
	query := `
		SELECT id, transcription, word_count, file_name, file_size, type, created_at
		FROM transcription
		WHERE id = $1
	`

	var t models.Transcription

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.Text,
		&t.WordCount,
		&t.FileName,
		&t.FileSize,
		&t.Type,
		&t.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get transcription by id: %w", err)
	}

	return &t, nil
}

func (r *PostgresTranscriptionRepo) List(ctx context.Context, limit int) ([]models.Transcription, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, transcription, word_count, file_name, file_size, type, created_at
		FROM transcription
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list transcriptions: %w", err)
	}
	defer rows.Close()

	out := make([]models.Transcription, 0, limit)
	for rows.Next() {
		var t models.Transcription
		if err := rows.Scan(&t.ID, &t.Text, &t.WordCount, &t.FileName, &t.FileSize, &t.Type, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	return out, rows.Err()
}

func (r *PostgresTranscriptionRepo) Update(ctx context.Context, id string, upd ports.TranscriptionUpdate) (*models.Transcription, error) {
	query := `
		UPDATE transcription
		SET transcription = COALESCE($2::text, transcription),
		    word_count    = COALESCE($3::int, word_count),
		    file_name     = COALESCE($4::text, file_name),
		    file_size     = COALESCE($5::bigint, file_size),
		    type          = COALESCE($6::text, type)
		WHERE id = $1
		RETURNING id, transcription, word_count, file_name, file_size, type, created_at
	`

	var t models.Transcription

	err := r.pool.QueryRow(ctx, query, id, upd.Text, upd.WordCount, upd.FileName, upd.FileSize, upd.Type).Scan(
		&t.ID,
		&t.Text,
		&t.WordCount,
		&t.FileName,
		&t.FileSize,
		&t.Type,
		&t.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("update transcription: %w", err)
	}

	return &t, nil
}

// Delete: enhanced_prompt уходит каскадом по FK.
func (r *PostgresTranscriptionRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transcription WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete transcription: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresTranscriptionRepo) Stats(ctx context.Context) (*ports.TranscriptionStats, error) {
	stats := &ports.TranscriptionStats{ByType: make(map[string]int)}

	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transcription`).Scan(&stats.Total); err != nil {
		return nil, fmt.Errorf("stats total: %w", err)
	}

	rows, err := r.pool.Query(ctx, `SELECT type, COUNT(*) FROM transcription GROUP BY type`)
	if err != nil {
		return nil, fmt.Errorf("stats by type: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var typ string
		var count int
		if err := rows.Scan(&typ, &count); err != nil {
			return nil, err
		}
		stats.ByType[typ] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	since := time.Now().Add(-24 * time.Hour)
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM transcription WHERE created_at >= $1`, since,
	).Scan(&stats.Recent); err != nil {
		return nil, fmt.Errorf("stats recent: %w", err)
	}

	return stats, nil
}

func (r *PostgresTranscriptionRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
