package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/resume-leads/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	query := `
		SELECT id, email, source, consent_at, created_at, last_seen_at,
		       first_ip_hash, last_ip_hash, user_agent, is_disposable
		FROM resume_leads
		WHERE email = $1
		LIMIT 1
	`

	var lead entity.Lead
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&lead.ID,
		&lead.Email,
		&lead.Source,
		&lead.ConsentAt,
		&lead.CreatedAt,
		&lead.LastSeenAt,
		&lead.FirstIPHash,
		&lead.LastIPHash,
		&lead.UserAgent,
		&lead.IsDisposable,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &lead, nil
}

// Insert grava um lead novo. O ON CONFLICT cobre a corrida entre duas
// primeiras submissões simultâneas do mesmo email: a perdedora vira o mesmo
// update de Touch e as colunas imutáveis ficam intactas.
func (r *LeadRepository) Insert(ctx context.Context, lead *entity.Lead) error {
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}

	query := `
		INSERT INTO resume_leads
			(id, email, source, consent_at, created_at, last_seen_at,
			 first_ip_hash, last_ip_hash, user_agent, is_disposable)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (email)
		DO UPDATE SET
			last_seen_at = EXCLUDED.last_seen_at,
			last_ip_hash = EXCLUDED.last_ip_hash,
			user_agent   = EXCLUDED.user_agent
	`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		lead.ID,
		lead.Email,
		lead.Source,
		lead.ConsentAt,
		lead.CreatedAt,
		lead.LastSeenAt,
		lead.FirstIPHash,
		lead.LastIPHash,
		lead.UserAgent,
		lead.IsDisposable,
	)
	return err
}

// Touch atualiza só as três colunas mutáveis, chaveado pelo email.
func (r *LeadRepository) Touch(ctx context.Context, email string, seenAt time.Time, ipHash, userAgent string) error {
	query := `
		UPDATE resume_leads
		SET last_seen_at = $1, last_ip_hash = $2, user_agent = $3
		WHERE email = $4
	`

	_, err := r.DB.ExecContext(ctx, query, seenAt, ipHash, userAgent, email)
	return err
}
