package entity

import (
	"context"
	"time"
)

// Lead é um registro da tabela resume_leads. Depois da criação só mudam
// last_seen_at, last_ip_hash e user_agent.
type Lead struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Source       string    `json:"source"`
	ConsentAt    time.Time `json:"consent_at"`
	CreatedAt    time.Time `json:"created_at"`
	LastSeenAt   time.Time `json:"last_seen_at"`
	FirstIPHash  string    `json:"first_ip_hash"`
	LastIPHash   string    `json:"last_ip_hash"`
	UserAgent    string    `json:"user_agent"`
	IsDisposable bool      `json:"is_disposable"`
}

type LeadRepositoryInterface interface {

	// FindByEmail retorna (nil, nil) quando o email ainda não existe.
	FindByEmail(ctx context.Context, email string) (*Lead, error)

	Insert(ctx context.Context, lead *Lead) error

	Touch(ctx context.Context, email string, seenAt time.Time, ipHash, userAgent string) error
}
