package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/vidgrab-go/internal/domain"
)

// ProcessRunner executes one external engine process per call, capturing its
// streams into bounded buffers and enforcing a per-step timeout by killing
// the whole process group. Calls share no state and are safe to use from
// concurrent requests.
type ProcessRunner struct {
	logger *zap.Logger
}

// NewProcessRunner creates a process runner
func NewProcessRunner(logger *zap.Logger) *ProcessRunner {
	return &ProcessRunner{logger: logger}
}

// Run launches the invocation and waits for it to finish. A nonzero exit is
// reported through RunResult.ExitCode, not an error; errors are reserved for
// launch failures, timeouts and caller cancellation.
func (r *ProcessRunner) Run(ctx context.Context, inv *domain.EngineInvocation, timeout time.Duration, maxOutputBytes int64) (*domain.RunResult, error) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, inv.Binary, inv.Args...)
	setProcessGroup(cmd)
	cmd.Cancel = func() error { return killProcessGroup(cmd) }
	cmd.WaitDelay = 5 * time.Second

	stdout := newCappedBuffer(maxOutputBytes)
	stderr := newCappedBuffer(maxOutputBytes)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	result := &domain.RunResult{
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
		Elapsed: elapsed,
	}

	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case ctx.Err() != nil:
			// Caller went away; the process group has been killed.
			return nil, ctx.Err()
		case errors.Is(runCtx.Err(), context.DeadlineExceeded):
			r.logger.Warn("Engine step timed out",
				zap.String("engine", string(inv.Engine)),
				zap.Duration("timeout", timeout))
			return nil, domain.NewDownloadError(domain.FailureExtraction,
				"engine timed out after "+timeout.String(), runCtx.Err())
		case errors.As(err, &exitErr):
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		default:
			return nil, domain.NewDownloadError(domain.FailureEngineLaunch,
				"failed to launch "+inv.Binary, err)
		}
	}

	return result, nil
}

// cappedBuffer accepts writes forever but keeps at most limit bytes.
// Engine output is diagnostic text; anything past the cap is dropped
// rather than buffered without bound.
type cappedBuffer struct {
	buf     bytes.Buffer
	limit   int64
	dropped int64
}

func newCappedBuffer(limit int64) *cappedBuffer {
	if limit <= 0 {
		limit = 1 << 20
	}
	return &cappedBuffer{limit: limit}
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	room := b.limit - int64(b.buf.Len())
	if room <= 0 {
		b.dropped += int64(len(p))
		return len(p), nil
	}
	if int64(len(p)) > room {
		b.dropped += int64(len(p)) - room
		b.buf.Write(p[:room])
		return len(p), nil
	}
	b.buf.Write(p)
	return len(p), nil
}

func (b *cappedBuffer) String() string {
	return b.buf.String()
}
