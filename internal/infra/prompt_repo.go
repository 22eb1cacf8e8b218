package infra

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/voicescribe/internal/models"
	"github.com/Vovarama1992/voicescribe/internal/ports"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresPromptRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresPromptRepo(pool *pgxpool.Pool) ports.EnhancedPromptRepository {
	return &PostgresPromptRepo{pool: pool}
}

// Insert пишет промпт и его follow-up'ы одной транзакцией:
// половинчатая запись нам не нужна.
func (r *PostgresPromptRepo) Insert(ctx context.Context, p *models.EnhancedPrompt) (*models.EnhancedPrompt, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin insert prompt: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO enhanced_prompt
			(id, transcription_id, enhanced_prompt, summary, original_text, target_agent, prompt_style)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	row := tx.QueryRow(ctx, query,
		p.ID, p.TranscriptionID, p.EnhancedText, p.Summary, p.OriginalText, p.TargetAgent, p.PromptStyle,
	)
	if err := row.Scan(&p.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert enhanced prompt: %w", err)
	}

	for i, text := range p.FollowUps {
		_, err := tx.Exec(ctx, `
			INSERT INTO suggested_follow_up (id, enhanced_prompt_id, follow_up_text, position)
			VALUES ($1, $2, $3, $4)
		`, uuid.NewString(), p.ID, text, i)
		if err != nil {
			return nil, fmt.Errorf("insert follow up: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit insert prompt: %w", err)
	}

	return p, nil
}

func (r *PostgresPromptRepo) GetByID(ctx context.Context, id string) (*models.EnhancedPrompt, error) {
	query := `
		SELECT id, transcription_id, enhanced_prompt, summary, original_text, target_agent, prompt_style, created_at
		FROM enhanced_prompt
		WHERE id = $1
	`

	var p models.EnhancedPrompt

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.TranscriptionID,
		&p.EnhancedText,
		&p.Summary,
		&p.OriginalText,
		&p.TargetAgent,
		&p.PromptStyle,
		&p.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get enhanced prompt: %w", err)
	}

	if err := r.loadFollowUps(ctx, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *PostgresPromptRepo) ListByTranscription(ctx context.Context, transcriptionID string) ([]models.EnhancedPrompt, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, transcription_id, enhanced_prompt, summary, original_text, target_agent, prompt_style, created_at
		FROM enhanced_prompt
		WHERE transcription_id = $1
		ORDER BY created_at DESC
	`, transcriptionID)
	if err != nil {
		return nil, fmt.Errorf("list enhanced prompts: %w", err)
	}
	defer rows.Close()

	var out []models.EnhancedPrompt
	for rows.Next() {
		var p models.EnhancedPrompt
		if err := rows.Scan(
			&p.ID, &p.TranscriptionID, &p.EnhancedText, &p.Summary,
			&p.OriginalText, &p.TargetAgent, &p.PromptStyle, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if err := r.loadFollowUps(ctx, &out[i]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (r *PostgresPromptRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM enhanced_prompt WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete enhanced prompt: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresPromptRepo) loadFollowUps(ctx context.Context, p *models.EnhancedPrompt) error {
	rows, err := r.pool.Query(ctx, `
		SELECT follow_up_text
		FROM suggested_follow_up
		WHERE enhanced_prompt_id = $1
		ORDER BY position ASC
	`, p.ID)
	if err != nil {
		return fmt.Errorf("load follow ups: %w", err)
	}
	defer rows.Close()

	p.FollowUps = []string{}
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return err
		}
		p.FollowUps = append(p.FollowUps, text)
	}

	return rows.Err()
}
