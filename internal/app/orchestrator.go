package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/vidgrab-go/internal/domain"
	"github.com/yourusername/vidgrab-go/internal/infrastructure"
)

// probeOutputCap bounds the metadata dump, which runs larger than the
// diagnostic text of a download step.
const probeOutputCap = 8 << 20

// Runner executes one engine invocation. Satisfied by
// infrastructure.ProcessRunner; tests substitute a scripted fake.
type Runner interface {
	Run(ctx context.Context, inv *domain.EngineInvocation, timeout time.Duration, maxOutputBytes int64) (*domain.RunResult, error)
}

// Orchestrator coordinates a media acquisition end to end: plan selection,
// sequential engine invocations, artifact resolution, engine health updates
// and scratch cleanup.
type Orchestrator struct {
	selector *infrastructure.EngineSelector
	builder  *infrastructure.CommandBuilder
	runner   Runner
	resolver *infrastructure.ArtifactResolver
	health   *domain.HealthRegistry
	cleaner  *infrastructure.Cleaner
	notifier *infrastructure.NotificationService
	config   *domain.DownloadConfig
	logger   *zap.Logger
}

// NewOrchestrator creates a download orchestrator
func NewOrchestrator(
	selector *infrastructure.EngineSelector,
	builder *infrastructure.CommandBuilder,
	runner Runner,
	resolver *infrastructure.ArtifactResolver,
	health *domain.HealthRegistry,
	cleaner *infrastructure.Cleaner,
	notifier *infrastructure.NotificationService,
	config *domain.DownloadConfig,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		selector: selector,
		builder:  builder,
		runner:   runner,
		resolver: resolver,
		health:   health,
		cleaner:  cleaner,
		notifier: notifier,
		config:   config,
		logger:   logger,
	}
}

// Health exposes the engine health registry for status reporting
func (o *Orchestrator) Health() *domain.HealthRegistry {
	return o.health
}

// Acquire runs the full plan for a request and returns the located artifact.
// Steps run strictly in order; the first failure aborts the remaining steps,
// schedules deletion of every partial artifact and surfaces a classified
// error. Engine health for the platform is updated on every terminal outcome.
func (o *Orchestrator) Acquire(ctx context.Context, req *domain.MediaRequest) (*domain.Artifact, error) {
	platform := domain.DetectPlatform(req.URL)

	plan, err := o.selector.SelectPlan(req, platform)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(o.config.TempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}

	o.logger.Info("Acquisition started",
		zap.String("request_id", req.ID),
		zap.String("platform", string(platform)),
		zap.String("format", string(req.Format)),
		zap.Int("steps", len(plan.Steps)))

	var mergeInputs []string

	for i := range plan.Steps {
		step := plan.Steps[i]
		if step.Action == domain.ActionMerge {
			step.Inputs = mergeInputs
		}

		inv, err := o.builder.Build(step, platform)
		if err != nil {
			return nil, o.failPlan(req, platform,
				domain.NewDownloadError(domain.FailureExtraction, "failed to build engine command", err))
		}

		o.logger.Info("Running engine step",
			zap.String("request_id", req.ID),
			zap.Int("step", i+1),
			zap.String("command", infrastructure.RedactedCommand(inv)))

		result, err := o.runner.Run(ctx, inv, o.config.StepTimeout, o.config.MaxOutputBytes)
		if err != nil {
			if de, ok := domain.AsDownloadError(err); ok {
				return nil, o.failPlan(req, platform, de)
			}
			// Caller cancellation; clean up whatever partials exist.
			o.cleaner.ScheduleSweep(o.config.TempDir, req.BaseName())
			return nil, err
		}

		if result.ExitCode != 0 {
			excerpt := tail(result.Stderr, 400)
			kind := domain.ClassifyEngineFailure(excerpt)
			return nil, o.failPlan(req, platform, domain.NewDownloadError(kind,
				fmt.Sprintf("engine exited with code %d: %s", result.ExitCode, excerpt), nil))
		}

		o.logger.Debug("Engine step finished",
			zap.String("request_id", req.ID),
			zap.Int("step", i+1),
			zap.Duration("elapsed", result.Elapsed))

		// Later steps consume earlier outputs, so intermediates are
		// resolved as soon as their step completes.
		if step.Action != domain.ActionMerge && step.OutputBase != plan.FinalBase {
			artifact, err := o.resolver.Resolve(inv.OutputHint, o.config.TempDir, step.OutputBase)
			if err != nil {
				return nil, o.failPlan(req, platform, domain.NewDownloadError(
					domain.FailureArtifactNotFound,
					fmt.Sprintf("step %d produced no output", i+1), err))
			}
			mergeInputs = append(mergeInputs, artifact.Path)
		}
	}

	expected := filepath.Join(o.config.TempDir, plan.FinalBase+plan.FinalExt)
	artifact, err := o.resolver.Resolve(expected, o.config.TempDir, plan.FinalBase)
	if err != nil {
		if de, ok := domain.AsDownloadError(err); ok {
			return nil, o.failPlan(req, platform, de)
		}
		return nil, o.failPlan(req, platform,
			domain.NewDownloadError(domain.FailureArtifactNotFound, "no output located", err))
	}

	// Intermediates from a merge plan are no longer needed; sweeping by
	// their bases also catches engine side-files the plan never named.
	for _, base := range plan.IntermediateBases() {
		o.cleaner.ScheduleSweep(o.config.TempDir, base)
	}

	o.health.RecordSuccess(platform)
	o.notifier.NotifyAcquired(req.Title, platform)

	o.logger.Info("Acquisition complete",
		zap.String("request_id", req.ID),
		zap.String("path", artifact.Path),
		zap.Int64("size", artifact.Size))

	return artifact, nil
}

// FetchInfo runs the info-only invocation for a URL and returns its metadata
func (o *Orchestrator) FetchInfo(ctx context.Context, url, platformHint string) (*domain.MediaInfo, error) {
	platform := domain.DetectPlatform(url)
	inv := o.builder.BuildProbe(url, platform)

	o.logger.Info("Fetching metadata",
		zap.String("url", url),
		zap.String("platform", string(platform)))

	result, err := o.runner.Run(ctx, inv, o.config.StepTimeout, probeOutputCap)
	if err != nil {
		return nil, err
	}
	if result.ExitCode != 0 {
		excerpt := tail(result.Stderr, 400)
		kind := domain.ClassifyEngineFailure(excerpt)
		return nil, domain.NewDownloadError(kind,
			fmt.Sprintf("metadata query failed: %s", excerpt), nil)
	}

	var raw struct {
		Title          string      `json:"title"`
		Thumbnail      string      `json:"thumbnail"`
		Duration       json.Number `json:"duration"`
		DurationString string      `json:"duration_string"`
		Uploader       string      `json:"uploader"`
	}
	if err := json.Unmarshal([]byte(result.Stdout), &raw); err != nil {
		return nil, domain.NewDownloadError(domain.FailureExtraction,
			"engine returned malformed metadata", err)
	}

	info := &domain.MediaInfo{
		Title:     raw.Title,
		Thumbnail: raw.Thumbnail,
		Duration:  raw.DurationString,
		Uploader:  raw.Uploader,
		Platform:  platformHint,
		URL:       url,
	}
	if seconds, err := raw.Duration.Int64(); err == nil {
		info.Duration = domain.FormatDuration(int(seconds))
	}
	if info.Duration == "" {
		info.Duration = "Unknown"
	}
	if info.Platform == "" {
		info.Platform = string(platform)
	}
	return info, nil
}

// failPlan records the failure against engine health, sweeps every partial
// artifact the request may have produced and returns the classified error.
func (o *Orchestrator) failPlan(req *domain.MediaRequest, platform domain.Platform, derr *domain.DownloadError) error {
	o.health.RecordFailure(platform, derr.Message, derr.Kind == domain.FailureAuthExpired)
	o.cleaner.ScheduleSweep(o.config.TempDir, req.BaseName())
	o.notifier.NotifyFailed(req.Title, platform)

	o.logger.Error("Acquisition failed",
		zap.String("request_id", req.ID),
		zap.String("platform", string(platform)),
		zap.String("kind", string(derr.Kind)),
		zap.Error(derr))

	return derr
}

func tail(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[len(s)-max:]
}

var _ Runner = (*infrastructure.ProcessRunner)(nil)
