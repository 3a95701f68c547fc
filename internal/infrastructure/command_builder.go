package infrastructure

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yourusername/vidgrab-go/internal/domain"
)

// CommandBuilder constructs engine invocations from plan steps, folding in
// credentials, hardening flags and output targeting. Secrets are carried on
// the invocation so logging can mask them.
type CommandBuilder struct {
	creds   *CredentialStore
	engines *domain.EngineConfig
	tempDir string
}

// NewCommandBuilder creates a command builder
func NewCommandBuilder(creds *CredentialStore, engines *domain.EngineConfig, tempDir string) *CommandBuilder {
	return &CommandBuilder{creds: creds, engines: engines, tempDir: tempDir}
}

// Build turns one plan step into a runnable invocation
func (b *CommandBuilder) Build(step domain.PlanStep, platform domain.Platform) (*domain.EngineInvocation, error) {
	switch step.Engine {
	case domain.EngineYTDLP:
		return b.buildYTDLP(step, platform), nil
	case domain.EngineFFmpeg:
		return b.buildFFmpegMerge(step)
	}
	return nil, fmt.Errorf("unknown engine: %s", step.Engine)
}

// BuildProbe builds the info-only invocation for a URL
func (b *CommandBuilder) BuildProbe(url string, platform domain.Platform) *domain.EngineInvocation {
	inv := &domain.EngineInvocation{
		Engine: domain.EngineYTDLP,
		Binary: b.engines.YTDLPBinary,
		Args: []string{
			"--dump-json",
			"--no-warnings",
			"--no-playlist",
			"--user-agent", b.engines.UserAgent,
			"-f", "best",
		},
	}
	b.appendTLSFlag(inv)
	b.appendCookies(inv, platform)
	inv.Args = append(inv.Args, url)
	return inv
}

func (b *CommandBuilder) buildYTDLP(step domain.PlanStep, platform domain.Platform) *domain.EngineInvocation {
	outputTemplate := filepath.Join(b.tempDir, step.OutputBase+".%(ext)s")
	inv := &domain.EngineInvocation{
		Engine: domain.EngineYTDLP,
		Binary: b.engines.YTDLPBinary,
		Args: []string{
			"--no-warnings",
			"--no-playlist",
			"--user-agent", b.engines.UserAgent,
			"--output", outputTemplate,
		},
		OutputHint: filepath.Join(b.tempDir, step.OutputBase+extensionFor(step)),
	}
	b.appendTLSFlag(inv)

	if b.engines.FFmpegBinary != "" {
		inv.Args = append(inv.Args, "--ffmpeg-location", b.engines.FFmpegBinary)
	}

	switch step.Action {
	case domain.ActionExtractAudio:
		inv.Args = append(inv.Args,
			"--extract-audio",
			"--audio-format", "mp3",
			"--audio-quality", "0",
			"-f", step.FormatSelector)
	default:
		inv.Args = append(inv.Args, "-f", step.FormatSelector)
		if step.MergeContainer != "" {
			inv.Args = append(inv.Args, "--merge-output-format", step.MergeContainer)
		}
	}

	b.appendCookies(inv, platform)
	if step.ForceAuthClient {
		b.appendExtractorAuth(inv)
	}

	inv.Args = append(inv.Args, step.URL)
	return inv
}

func (b *CommandBuilder) buildFFmpegMerge(step domain.PlanStep) (*domain.EngineInvocation, error) {
	if len(step.Inputs) != 2 {
		return nil, fmt.Errorf("merge step needs two inputs, got %d", len(step.Inputs))
	}
	output := filepath.Join(b.tempDir, step.OutputBase+".mp4")
	return &domain.EngineInvocation{
		Engine: domain.EngineFFmpeg,
		Binary: b.engines.FFmpegBinary,
		Args: []string{
			"-i", step.Inputs[0],
			"-i", step.Inputs[1],
			"-c:v", "copy",
			"-c:a", "aac",
			"-movflags", "+faststart",
			"-y", output,
		},
		OutputHint: output,
	}, nil
}

// appendCookies attaches the cookie flag when the store reports presence.
// Absence is not an error; the step proceeds without the flag.
func (b *CommandBuilder) appendCookies(inv *domain.EngineInvocation, platform domain.Platform) {
	if cookieFile, ok := b.creds.CookieFile(platform); ok {
		inv.Args = append(inv.Args, "--cookies", cookieFile)
	}
}

// appendExtractorAuth forces the elevated-auth extractor client and attaches
// the rotating token material when configured. The token values are secrets.
func (b *CommandBuilder) appendExtractorAuth(inv *domain.EngineInvocation) {
	parts := []string{"player_client=default,web_safari"}
	if token, ok := b.creds.POToken(); ok {
		parts = append(parts, "po_token=web.gvs+"+token)
		inv.Secrets = append(inv.Secrets, token)
	}
	if visitor, ok := b.creds.VisitorData(); ok {
		parts = append(parts, "visitor_data="+visitor)
		inv.Secrets = append(inv.Secrets, visitor)
	}
	inv.Args = append(inv.Args, "--extractor-args", "youtube:"+strings.Join(parts, ";"))
}

func (b *CommandBuilder) appendTLSFlag(inv *domain.EngineInvocation) {
	if b.engines.InsecureTLS {
		inv.Args = append(inv.Args, "--no-check-certificates")
	}
}

func extensionFor(step domain.PlanStep) string {
	if step.Action == domain.ActionExtractAudio {
		return ".mp3"
	}
	return ".mp4"
}
