package domain

import "strings"

// Platform represents the source platform for downloads
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformUnknown   Platform = "unknown"
)

// hostMarkers maps each platform to the URL substrings that identify it.
var hostMarkers = []struct {
	platform Platform
	markers  []string
}{
	{PlatformYouTube, []string{"youtube.com", "youtu.be"}},
	{PlatformInstagram, []string{"instagram.com"}},
	{PlatformTikTok, []string{"tiktok.com"}},
}

// DetectPlatform classifies a URL into a known platform. Unmatched input
// yields PlatformUnknown; the function never fails.
func DetectPlatform(url string) Platform {
	lower := strings.ToLower(url)
	for _, entry := range hostMarkers {
		for _, marker := range entry.markers {
			if strings.Contains(lower, marker) {
				return entry.platform
			}
		}
	}
	return PlatformUnknown
}

// ValidatePlatform checks if a platform is one of the supported sources
func ValidatePlatform(platform Platform) bool {
	switch platform {
	case PlatformYouTube, PlatformInstagram, PlatformTikTok:
		return true
	}
	return false
}
