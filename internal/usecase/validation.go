package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// DefaultIPSalt é o fallback quando LEADS_IP_SALT não está configurado.
const DefaultIPSalt = "resume-leads"

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var disposableDomains = map[string]struct{}{
	"mailinator.com":    {},
	"tempmail.com":      {},
	"guerrillamail.com": {},
	"10minutemail.com":  {},
	"yopmail.com":       {},
	"trashmail.com":     {},
}

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func emailDomain(email string) string {
	_, domain, found := strings.Cut(email, "@")
	if !found {
		return ""
	}
	return domain
}

func isDisposableDomain(domain string) bool {
	_, ok := disposableDomains[domain]
	return ok
}

// hashIP devolve o SHA-256 hex de "<ip>:<salt>". O IP cru nunca é persistido.
func hashIP(ip, salt string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%s", ip, salt)))
	return hex.EncodeToString(sum[:])
}
