package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/vidgrab-go/internal/domain"
)

func TestCredentialStore_Has(t *testing.T) {
	dir := t.TempDir()
	cookie := writeCookieFile(t, dir, "yt.txt")

	store := NewCredentialStore(&domain.CredentialConfig{
		CookieFiles: map[string]string{"youtube": cookie},
		POToken:     "tok-abc",
	})

	assert.True(t, store.Has(CredentialCookieFile, domain.PlatformYouTube))
	assert.False(t, store.Has(CredentialCookieFile, domain.PlatformTikTok), "no generic fallback configured")
	assert.True(t, store.Has(CredentialPOToken, domain.PlatformYouTube))
	assert.False(t, store.Has(CredentialVisitorData, domain.PlatformYouTube))
	assert.False(t, store.Has(CredentialKind("unknown"), domain.PlatformYouTube))
}

func TestCredentialStore_EmptyConfigHasNothing(t *testing.T) {
	store := NewCredentialStore(&domain.CredentialConfig{})

	for _, kind := range []CredentialKind{CredentialCookieFile, CredentialPOToken, CredentialVisitorData} {
		assert.False(t, store.Has(kind, domain.PlatformYouTube), string(kind))
	}
}
