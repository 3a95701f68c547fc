package domain

import (
	"errors"
	"fmt"
	"strings"
)

// FailureKind classifies a terminal download failure
type FailureKind string

const (
	FailureUnsupportedPlatform FailureKind = "unsupported_platform"
	FailureCredentialMissing   FailureKind = "credential_missing"
	FailureEngineLaunch        FailureKind = "engine_launch"
	FailureAuthExpired         FailureKind = "auth_expired"
	FailureExtraction          FailureKind = "extraction"
	FailureArtifactNotFound    FailureKind = "artifact_not_found"
	FailureStreamTransport     FailureKind = "stream_transport"
)

// DownloadError is a classified failure surfaced to the caller. Hint, when
// set, tells the front end what the user can do about it.
type DownloadError struct {
	Kind    FailureKind
	Message string
	Hint    string
	Err     error
}

func (e *DownloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// NewDownloadError creates a classified download error
func NewDownloadError(kind FailureKind, message string, err error) *DownloadError {
	return &DownloadError{Kind: kind, Message: message, Err: err, Hint: defaultHint(kind)}
}

// AsDownloadError extracts a DownloadError from an error chain
func AsDownloadError(err error) (*DownloadError, bool) {
	var de *DownloadError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// authExpiryVocabulary is the fixed list of diagnostic-text substrings that
// mark an engine failure as authentication-related rather than transient.
var authExpiryVocabulary = []string{
	"sign in",
	"not a bot",
	"bot check",
	"private video",
	"cookies",
	"login required",
	"requires authentication",
	"account has been",
}

// ClassifyEngineFailure inspects an engine's diagnostic output and decides
// whether a nonzero exit was caused by expired/missing authentication.
// The match is case-insensitive.
func ClassifyEngineFailure(diagnostics string) FailureKind {
	lower := strings.ToLower(diagnostics)
	for _, term := range authExpiryVocabulary {
		if strings.Contains(lower, term) {
			return FailureAuthExpired
		}
	}
	return FailureExtraction
}

func defaultHint(kind FailureKind) string {
	switch kind {
	case FailureUnsupportedPlatform:
		return "only YouTube, Instagram and TikTok links are supported"
	case FailureAuthExpired:
		return "update the platform credentials (cookies or tokens) and try again"
	case FailureExtraction:
		return "the platform may be temporarily blocking downloads, try again later"
	case FailureEngineLaunch:
		return "check that the extraction binaries are installed and on PATH"
	}
	return ""
}
