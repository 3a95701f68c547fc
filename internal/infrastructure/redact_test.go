package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/vidgrab-go/internal/domain"
)

func TestShellQuote(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain word", "yt-dlp", "yt-dlp"},
		{"empty string", "", "''"},
		{"with space", "my file.mp4", "'my file.mp4'"},
		{"with double quote", `a"b`, `'a"b'`},
		{"with single quote", "it's", `'it'"'"'s'`},
		{"with dollar", "$HOME/clip", "'$HOME/clip'"},
		{"with glob", "*.mp4", "'*.mp4'"},
		{"url stays readable", "https://youtu.be/abc?t=5", "'https://youtu.be/abc?t=5'"},
		{"safe path untouched", "/tmp/scratch/clip_123.mp4", "/tmp/scratch/clip_123.mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shellQuote(tt.input))
		})
	}
}

func TestRedactedCommand_MasksSecrets(t *testing.T) {
	inv := &domain.EngineInvocation{
		Engine: domain.EngineYTDLP,
		Binary: "yt-dlp",
		Args: []string{
			"--extractor-args",
			"youtube:player_client=default,web_safari;po_token=web.gvs+tok-abc123;visitor_data=vd-xyz",
			"https://youtu.be/x",
		},
		Secrets: []string{"tok-abc123", "vd-xyz"},
	}

	display := RedactedCommand(inv)

	assert.NotContains(t, display, "tok-abc123")
	assert.NotContains(t, display, "vd-xyz")
	assert.Contains(t, display, "po_token=web.gvs+***")
	assert.Contains(t, display, "visitor_data=***")
	assert.Contains(t, display, "https://youtu.be/x")
}

func TestRedactedCommand_NoSecretsIsVerbatim(t *testing.T) {
	inv := &domain.EngineInvocation{
		Engine: domain.EngineFFmpeg,
		Binary: "ffmpeg",
		Args:   []string{"-i", "/tmp/a.mp4", "-c:v", "copy", "/tmp/out.mp4"},
	}

	assert.Equal(t, "ffmpeg -i /tmp/a.mp4 -c:v copy /tmp/out.mp4", RedactedCommand(inv))
}

func TestRedactedCommand_IgnoresEmptySecret(t *testing.T) {
	inv := &domain.EngineInvocation{
		Binary:  "yt-dlp",
		Args:    []string{"https://youtu.be/x"},
		Secrets: []string{""},
	}

	assert.Contains(t, RedactedCommand(inv), "https://youtu.be/x")
}
