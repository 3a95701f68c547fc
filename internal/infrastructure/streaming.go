package infrastructure

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/yourusername/vidgrab-go/internal/domain"
)

// Cleaner schedules deferred deletion of scratch files. The grace delay
// lets the transport layer finish flushing before the file disappears.
type Cleaner struct {
	grace  time.Duration
	logger *zap.Logger
}

// NewCleaner creates a cleaner with the given grace delay
func NewCleaner(grace time.Duration, logger *zap.Logger) *Cleaner {
	return &Cleaner{grace: grace, logger: logger}
}

// Schedule deletes the given paths after the grace delay. Paths that no
// longer exist are skipped silently.
func (c *Cleaner) Schedule(paths ...string) {
	targets := make([]string, 0, len(paths))
	for _, p := range paths {
		if p != "" {
			targets = append(targets, p)
		}
	}
	if len(targets) == 0 {
		return
	}
	time.AfterFunc(c.grace, func() {
		if err := removeAll(targets); err != nil {
			c.logger.Warn("Scratch cleanup incomplete", zap.Error(err))
		}
	})
}

// ScheduleSweep deletes, after the grace delay, every entry in dir whose
// name contains baseHint. Base names are process-unique per request, so a
// sweep only ever touches that request's partials (including engine-side
// temp files the plan never named).
func (c *Cleaner) ScheduleSweep(dir, baseHint string) {
	if baseHint == "" {
		return
	}
	time.AfterFunc(c.grace, func() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return
		}
		var targets []string
		for _, entry := range entries {
			if !entry.IsDir() && strings.Contains(entry.Name(), baseHint) {
				targets = append(targets, filepath.Join(dir, entry.Name()))
			}
		}
		if err := removeAll(targets); err != nil {
			c.logger.Warn("Scratch sweep incomplete", zap.Error(err))
		}
	})
}

// RemoveNow deletes the given paths immediately, aggregating any failures.
func (c *Cleaner) RemoveNow(paths ...string) error {
	return removeAll(paths)
}

func removeAll(paths []string) error {
	var result *multierror.Error
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// ResponseSink is the caller-supplied destination for a streamed artifact.
// WriteMetadata is called exactly once, before the first body byte.
type ResponseSink interface {
	WriteMetadata(contentType, filename string, length int64)
	io.Writer
}

// StreamingResponder streams artifacts to a sink in a single pass and owns
// their deletion afterwards.
type StreamingResponder struct {
	cleaner *Cleaner
	logger  *zap.Logger
}

// NewStreamingResponder creates a streaming responder
func NewStreamingResponder(cleaner *Cleaner, logger *zap.Logger) *StreamingResponder {
	return &StreamingResponder{cleaner: cleaner, logger: logger}
}

// Deliver streams the artifact's bytes to the sink. Deletion is scheduled on
// every path out: a partially delivered file must never be left behind.
func (s *StreamingResponder) Deliver(artifact *domain.Artifact, contentType, filename string, sink ResponseSink) error {
	file, err := os.Open(artifact.Path)
	if err != nil {
		s.cleaner.Schedule(artifact.Path)
		return domain.NewDownloadError(domain.FailureArtifactNotFound,
			"artifact vanished before delivery", err)
	}
	defer file.Close()
	defer s.cleaner.Schedule(artifact.Path)

	if contentType == "" {
		contentType = artifact.MIMEHint
	}
	sink.WriteMetadata(contentType, filename, artifact.Size)

	written, err := io.Copy(sink, file)
	if err != nil {
		s.logger.Warn("Stream interrupted",
			zap.String("path", artifact.Path),
			zap.Int64("written", written),
			zap.Error(err))
		return domain.NewDownloadError(domain.FailureStreamTransport,
			"delivery interrupted mid-stream", err)
	}
	return nil
}
