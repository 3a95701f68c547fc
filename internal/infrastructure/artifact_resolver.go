package infrastructure

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yourusername/vidgrab-go/internal/domain"
)

// alternateExtensions are the containers engines are known to substitute for
// the nominally requested one, most likely first.
var alternateExtensions = []string{".mp4", ".webm", ".mkv", ".mov", ".m4a", ".mp3", ".opus", ".ogg"}

// ArtifactResolver locates the file an engine actually produced, tolerating
// substituted extensions and engine-specific renames.
type ArtifactResolver struct{}

// NewArtifactResolver creates an artifact resolver
func NewArtifactResolver() *ArtifactResolver {
	return &ArtifactResolver{}
}

// Resolve finds the produced artifact. Resolution order: the exact expected
// path, the same path with known alternate extensions, then a directory scan
// for entries carrying the request's base filename, newest match winning.
// Zero-byte files indicate a silently aborted engine run and never resolve.
func (r *ArtifactResolver) Resolve(expectedPath, dir, baseHint string) (*domain.Artifact, error) {
	if artifact := statNonEmpty(expectedPath); artifact != nil {
		return artifact, nil
	}

	stem := strings.TrimSuffix(expectedPath, filepath.Ext(expectedPath))
	for _, ext := range alternateExtensions {
		candidate := stem + ext
		if candidate == expectedPath {
			continue
		}
		if artifact := statNonEmpty(candidate); artifact != nil {
			return artifact, nil
		}
	}

	if artifact := r.scanDirectory(dir, baseHint); artifact != nil {
		return artifact, nil
	}

	return nil, domain.NewDownloadError(domain.FailureArtifactNotFound,
		fmt.Sprintf("no output located for %s", filepath.Base(expectedPath)), nil)
}

// scanDirectory picks the most recently modified nonzero entry whose name
// contains the base hint.
func (r *ArtifactResolver) scanDirectory(dir, baseHint string) *domain.Artifact {
	if baseHint == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var best *domain.Artifact
	var bestTime time.Time
	for _, entry := range entries {
		if entry.IsDir() || !strings.Contains(entry.Name(), baseHint) {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.Size() == 0 {
			continue
		}
		if best == nil || info.ModTime().After(bestTime) {
			path := filepath.Join(dir, entry.Name())
			best = &domain.Artifact{Path: path, Size: info.Size(), MIMEHint: mimeHint(path)}
			bestTime = info.ModTime()
		}
	}
	return best
}

func statNonEmpty(path string) *domain.Artifact {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() == 0 {
		return nil
	}
	return &domain.Artifact{Path: path, Size: info.Size(), MIMEHint: mimeHint(path)}
}

func mimeHint(path string) string {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		return "audio/mpeg"
	case ".mp4", ".m4v":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".mkv":
		return "video/x-matroska"
	case ".m4a":
		return "audio/mp4"
	default:
		if hint := mime.TypeByExtension(ext); hint != "" {
			return hint
		}
		return "application/octet-stream"
	}
}
