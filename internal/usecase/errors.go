package usecase

// Códigos estáveis do envelope de erro. O handler converte código em status HTTP.
const (
	CodeBadRequest      = "bad_request"
	CodeBotDetected     = "bot_detected"
	CodeInvalidEmail    = "invalid_email"
	CodeConsentRequired = "consent_required"
	CodeBotCheckFailed  = "bot_check_failed"
	CodeServerError     = "server_error"
)

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

var (
	ErrSourceNotAccepted = &DomainError{Code: CodeBadRequest, Message: "source is not accepted"}
	ErrBotDetected       = &DomainError{Code: CodeBotDetected, Message: "honeypot field was filled"}
	ErrInvalidEmail      = &DomainError{Code: CodeInvalidEmail, Message: "email format is invalid"}
	ErrConsentRequired   = &DomainError{Code: CodeConsentRequired, Message: "consent must be accepted"}
	ErrBotCheckFailed    = &DomainError{Code: CodeBotCheckFailed, Message: "bot verification failed"}
)
