package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/xavierca1/resume-leads/internal/entity"
)

// AllowedSource é a única origem aceita para este endpoint.
const AllowedSource = "about_resume_cta"

const (
	StatusCreated = "created"
	StatusUpdated = "updated"
)

type BotVerifier interface {
	Enabled() bool
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}

type LeadNotifier interface {
	NotifyLead(status, email, source string, at time.Time) error
}

// CaptureLeadInput já chega com os campos coagidos pelo handler: valores de
// tipo inesperado no JSON viram string vazia / false, nunca erro de parse.
type CaptureLeadInput struct {
	Email          string // trimmed + lowercased
	Consent        bool
	Source         string
	TurnstileToken string
	CompanyWebsite string
	RemoteIP       string
	UserAgent      string
}

type CaptureLeadOutput struct {
	Status string `json:"status"`
}

type CaptureLeadUseCase struct {
	Repo          entity.LeadRepositoryInterface
	Verifier      BotVerifier
	Notifiers     []LeadNotifier
	IPSalt        string
	NotifyUpdates bool
}

func NewCaptureLeadUseCase(
	repo entity.LeadRepositoryInterface,
	verifier BotVerifier,
	notifiers []LeadNotifier,
	ipSalt string,
	notifyUpdates bool,
) *CaptureLeadUseCase {
	if ipSalt == "" {
		ipSalt = DefaultIPSalt
	}
	return &CaptureLeadUseCase{
		Repo:          repo,
		Verifier:      verifier,
		Notifiers:     notifiers,
		IPSalt:        ipSalt,
		NotifyUpdates: notifyUpdates,
	}
}

// Execute roda o pipeline de validação na ordem fixa (primeira falha ganha)
// e depois faz o insert-or-update. Erros de validação voltam como *DomainError.
func (uc *CaptureLeadUseCase) Execute(ctx context.Context, input CaptureLeadInput) (*CaptureLeadOutput, error) {
	// Honeypot: cliente legítimo nunca preenche companyWebsite.
	if input.CompanyWebsite != "" {
		return nil, ErrBotDetected
	}

	if !isValidEmail(input.Email) {
		return nil, ErrInvalidEmail
	}

	if !input.Consent {
		return nil, ErrConsentRequired
	}

	if input.Source != AllowedSource {
		return nil, ErrSourceNotAccepted
	}

	// Sem token ou sem secret configurado: falha antes de chamar o Turnstile.
	if input.TurnstileToken == "" || !uc.Verifier.Enabled() {
		return nil, ErrBotCheckFailed
	}

	verified, err := uc.Verifier.Verify(ctx, input.TurnstileToken, input.RemoteIP)
	if err != nil {
		log.Printf("turnstile verify: %v", err)
		return nil, ErrBotCheckFailed
	}
	if !verified {
		return nil, ErrBotCheckFailed
	}

	// Um timestamp só para a request inteira, para manter os campos consistentes.
	now := time.Now().UTC()

	userAgent := input.UserAgent
	if userAgent == "" {
		userAgent = "unknown"
	}

	ipHash := hashIP(input.RemoteIP, uc.IPSalt)

	existing, err := uc.Repo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("lead lookup: %w", err)
	}

	status := StatusCreated
	if existing != nil {
		status = StatusUpdated
		if err := uc.Repo.Touch(ctx, input.Email, now, ipHash, userAgent); err != nil {
			return nil, fmt.Errorf("lead update: %w", err)
		}
	} else {
		lead := &entity.Lead{
			Email:        input.Email,
			Source:       AllowedSource,
			ConsentAt:    now,
			CreatedAt:    now,
			LastSeenAt:   now,
			FirstIPHash:  ipHash,
			LastIPHash:   ipHash,
			UserAgent:    userAgent,
			IsDisposable: isDisposableDomain(emailDomain(input.Email)),
		}
		if err := uc.Repo.Insert(ctx, lead); err != nil {
			return nil, fmt.Errorf("lead insert: %w", err)
		}
	}

	if status == StatusCreated || uc.NotifyUpdates {
		uc.notifyAsync(status, input.Email, now)
	}

	return &CaptureLeadOutput{Status: status}, nil
}

// notifyAsync dispara as notificações em background. A resposta HTTP nunca
// espera nem enxerga falha daqui; só loga.
func (uc *CaptureLeadUseCase) notifyAsync(status, email string, at time.Time) {
	for _, notifier := range uc.Notifiers {
		go func(n LeadNotifier) {
			if err := n.NotifyLead(status, email, AllowedSource, at); err != nil {
				log.Printf("lead notify failed: %v", err)
			}
		}(notifier)
	}
}
