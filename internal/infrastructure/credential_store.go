package infrastructure

import (
	"os"

	"github.com/yourusername/vidgrab-go/internal/domain"
)

// CredentialKind identifies one class of auth artifact
type CredentialKind string

const (
	CredentialCookieFile  CredentialKind = "cookie_file"
	CredentialPOToken     CredentialKind = "po_token"
	CredentialVisitorData CredentialKind = "visitor_data"
)

// CredentialStore reads the auth artifacts loaded at startup. It never
// writes credentials; absence is reported, not treated as an error.
type CredentialStore struct {
	config *domain.CredentialConfig
}

// NewCredentialStore creates a credential store over loaded configuration
func NewCredentialStore(config *domain.CredentialConfig) *CredentialStore {
	return &CredentialStore{config: config}
}

// CookieFile returns the cookie file for a platform, preferring the
// platform-dedicated file over the generic fallback. A referenced file that
// does not exist on disk counts as absent.
func (s *CredentialStore) CookieFile(platform domain.Platform) (string, bool) {
	if path, ok := s.config.CookieFiles[string(platform)]; ok && fileExists(path) {
		return path, true
	}
	if s.config.GenericCookieFile != "" && fileExists(s.config.GenericCookieFile) {
		return s.config.GenericCookieFile, true
	}
	return "", false
}

// POToken returns the short-lived proof-of-origin token, if configured
func (s *CredentialStore) POToken() (string, bool) {
	return s.config.POToken, s.config.POToken != ""
}

// VisitorData returns the session/visitor identifier, if configured
func (s *CredentialStore) VisitorData() (string, bool) {
	return s.config.VisitorData, s.config.VisitorData != ""
}

// Has reports whether a credential kind is present for a platform
func (s *CredentialStore) Has(kind CredentialKind, platform domain.Platform) bool {
	switch kind {
	case CredentialCookieFile:
		_, ok := s.CookieFile(platform)
		return ok
	case CredentialPOToken:
		_, ok := s.POToken()
		return ok
	case CredentialVisitorData:
		_, ok := s.VisitorData()
		return ok
	}
	return false
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
