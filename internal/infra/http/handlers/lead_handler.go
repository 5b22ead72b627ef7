package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/xavierca1/resume-leads/internal/infra/http/middleware"
	"github.com/xavierca1/resume-leads/internal/usecase"
)

type LeadHandler struct {
	CaptureLeadUC *usecase.CaptureLeadUseCase
}

func NewLeadHandler(uc *usecase.CaptureLeadUseCase) *LeadHandler {
	return &LeadHandler{CaptureLeadUC: uc}
}

// leadRequest aceita qualquer tipo em qualquer campo; tipo inesperado vira
// vazio/false na coerção, nunca derruba o parse.
type leadRequest struct {
	Email          any `json:"email"`
	Consent        any `json:"consent"`
	Source         any `json:"source"`
	TurnstileToken any `json:"turnstileToken"`
	CompanyWebsite any `json:"companyWebsite"`
}

type leadResponse struct {
	OK     bool   `json:"ok"`
	Status string `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (h *LeadHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		writeLeadError(w, http.StatusBadRequest, usecase.CodeBadRequest)
		return
	}

	var payload leadRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		// Body que não parseia cai no catch-all, igual ao resto de falha interna.
		log.Printf("resume lead: body decode: %v", err)
		writeLeadError(w, http.StatusInternalServerError, usecase.CodeServerError)
		return
	}

	input := usecase.CaptureLeadInput{
		Email:          normalizeEmail(payload.Email),
		Consent:        payload.Consent == true,
		Source:         stringField(payload.Source),
		TurnstileToken: stringField(payload.TurnstileToken),
		CompanyWebsite: strings.TrimSpace(stringField(payload.CompanyWebsite)),
		RemoteIP:       clientIP(r),
		UserAgent:      r.Header.Get("User-Agent"),
	}

	output, err := h.CaptureLeadUC.Execute(r.Context(), input)
	if err != nil {
		if domainErr, ok := err.(*usecase.DomainError); ok {
			writeLeadError(w, statusForCode(domainErr.Code), domainErr.Code)
			return
		}
		log.Printf("resume lead: %v", err)
		writeLeadError(w, http.StatusInternalServerError, usecase.CodeServerError)
		return
	}

	middleware.RecordLeadCaptured(output.Status)
	writeLeadJSON(w, http.StatusOK, leadResponse{OK: true, Status: output.Status})
}

// clientIP confia no header do proxy; sem ele, registra 0.0.0.0.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("CF-Connecting-IP"); ip != "" {
		return ip
	}
	return "0.0.0.0"
}

func normalizeEmail(value any) string {
	return strings.ToLower(strings.TrimSpace(stringField(value)))
}

func stringField(value any) string {
	s, _ := value.(string)
	return s
}

func statusForCode(code string) int {
	switch code {
	case usecase.CodeBotCheckFailed:
		return http.StatusForbidden
	case usecase.CodeServerError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func writeLeadError(w http.ResponseWriter, status int, code string) {
	middleware.RecordLeadRejected(code)
	writeLeadJSON(w, status, leadResponse{OK: false, Error: code})
}

func writeLeadJSON(w http.ResponseWriter, status int, body leadResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
