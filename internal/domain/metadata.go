package domain

import "fmt"

// MediaInfo is the metadata returned by an info-only engine invocation
type MediaInfo struct {
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Duration  string `json:"duration"`
	Uploader  string `json:"uploader,omitempty"`
	Platform  string `json:"platform"`
	URL       string `json:"originalUrl"`
}

// FormatDuration converts a duration in seconds to "m:ss" with the seconds
// zero-padded to two digits.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
