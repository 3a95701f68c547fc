package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected Platform
	}{
		{
			name:     "youtube full URL",
			url:      "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			expected: PlatformYouTube,
		},
		{
			name:     "youtube short URL",
			url:      "https://youtu.be/abc",
			expected: PlatformYouTube,
		},
		{
			name:     "instagram reel",
			url:      "https://www.instagram.com/reel/DTYq4i8kagH/",
			expected: PlatformInstagram,
		},
		{
			name:     "tiktok video",
			url:      "https://www.tiktok.com/@user/video/123",
			expected: PlatformTikTok,
		},
		{
			name:     "mixed case host",
			url:      "https://WWW.YouTube.COM/watch?v=x",
			expected: PlatformYouTube,
		},
		{
			name:     "unrelated host",
			url:      "https://example.com/x",
			expected: PlatformUnknown,
		},
		{
			name:     "empty string",
			url:      "",
			expected: PlatformUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestValidatePlatform(t *testing.T) {
	assert.True(t, ValidatePlatform(PlatformYouTube))
	assert.True(t, ValidatePlatform(PlatformTikTok))
	assert.True(t, ValidatePlatform(PlatformInstagram))
	assert.False(t, ValidatePlatform(PlatformUnknown))
	assert.False(t, ValidatePlatform(Platform("vimeo")))
}
