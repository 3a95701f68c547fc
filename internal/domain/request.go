package domain

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// MediaFormat represents the requested output format
type MediaFormat string

const (
	FormatVideo     MediaFormat = "video" // delivered as mp4
	FormatAudioOnly MediaFormat = "audio" // delivered as mp3
)

// QualityHighest requests the best available stream without a height cap.
const QualityHighest = "highest"

// DefaultFilenameMaxLength caps the sanitized title portion of output names.
const DefaultFilenameMaxLength = 100

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// MediaRequest represents one inbound download request. Read-only after
// creation; the base filename is fixed at construction so every invocation
// generated for the request shares it.
type MediaRequest struct {
	ID       string
	URL      string
	Format   MediaFormat
	Quality  string
	Title    string
	baseName string
}

// NewMediaRequest creates a media request with a collision-free output base
// name derived from the sanitized title, the creation timestamp and a short
// process-unique suffix.
func NewMediaRequest(url string, format MediaFormat, quality, title string) *MediaRequest {
	return NewMediaRequestWithCap(url, format, quality, title, DefaultFilenameMaxLength)
}

// NewMediaRequestWithCap is NewMediaRequest with an explicit title length cap.
func NewMediaRequestWithCap(url string, format MediaFormat, quality, title string, maxTitleLen int) *MediaRequest {
	if format == "" {
		format = FormatVideo
	}
	if quality == "" {
		quality = QualityHighest
	}
	id := uuid.New().String()
	base := fmt.Sprintf("%s_%d_%s",
		SanitizeTitle(title, maxTitleLen),
		time.Now().UnixMilli(),
		id[:8])
	return &MediaRequest{
		ID:       id,
		URL:      url,
		Format:   format,
		Quality:  quality,
		Title:    title,
		baseName: base,
	}
}

// BaseName returns the sanitized, process-unique output base filename
// (no directory, no extension) shared by every invocation of this request.
func (r *MediaRequest) BaseName() string {
	return r.baseName
}

// TargetExt returns the container extension the request resolves to.
func (r *MediaRequest) TargetExt() string {
	if r.Format == FormatAudioOnly {
		return ".mp3"
	}
	return ".mp4"
}

// ContentType returns the transfer MIME type for the requested format.
func (r *MediaRequest) ContentType() string {
	if r.Format == FormatAudioOnly {
		return "audio/mpeg"
	}
	return "video/mp4"
}

// SuggestedFilename returns the attachment filename offered to the caller.
func (r *MediaRequest) SuggestedFilename() string {
	return r.baseName + r.TargetExt()
}

// SanitizeTitle reduces a display title to filesystem-safe characters.
// Everything outside [A-Za-z0-9_-] becomes an underscore; the result is
// truncated to maxLen. An empty title becomes "video".
func SanitizeTitle(title string, maxLen int) string {
	if title == "" {
		title = "video"
	}
	safe := unsafeFilenameChars.ReplaceAllString(title, "_")
	if maxLen > 0 && len(safe) > maxLen {
		safe = safe[:maxLen]
	}
	return safe
}

// ParseMediaFormat maps inbound format strings (including the wire values
// "mp3" and "mp4") onto a MediaFormat.
func ParseMediaFormat(s string) (MediaFormat, error) {
	switch s {
	case "", "video", "mp4":
		return FormatVideo, nil
	case "audio", "audioOnly", "mp3":
		return FormatAudioOnly, nil
	}
	return "", fmt.Errorf("unknown media format: %q", s)
}
