package domain

import "time"

// EngineKind identifies the external tool an invocation step runs
type EngineKind string

const (
	EngineYTDLP  EngineKind = "yt-dlp"
	EngineFFmpeg EngineKind = "ffmpeg"
)

// StepAction is what a plan step asks its engine to do
type StepAction string

const (
	ActionDownload     StepAction = "download"      // fetch a stream to OutputPath
	ActionExtractAudio StepAction = "extract_audio" // fetch + transcode to mp3
	ActionMerge        StepAction = "merge"         // mux prior step outputs
	ActionProbe        StepAction = "probe"         // info-only metadata dump
)

// PlanStep is one invocation in an InvocationPlan. Steps run strictly in
// order; a nonzero exit on a required step aborts the rest of the plan.
type PlanStep struct {
	Engine EngineKind
	Action StepAction
	URL    string

	// FormatSelector is the engine's quality/container fallback chain
	// ("A/B/C" meaning try A, else B, else C). The engine resolves the
	// chain internally; the orchestrator only passes it through.
	FormatSelector string

	// MergeContainer, when set on a download step, asks the engine to remux
	// its combined output into that container.
	MergeContainer string

	// OutputBase is the step's output filename without directory or
	// extension. Download steps append the engine's ext template; merge
	// steps write OutputBase + the plan's target extension.
	OutputBase string

	// Inputs holds the resolved paths of prior step outputs a merge step
	// consumes. Filled in by the orchestrator once those files exist.
	Inputs []string

	// ForceAuthClient forces the elevated-authentication extractor path
	// regardless of the platform default. Credentials still degrade
	// silently when absent.
	ForceAuthClient bool
}

// InvocationPlan is the ordered list of steps required to satisfy one
// MediaRequest, plus where the final artifact is expected to land.
type InvocationPlan struct {
	Platform  Platform
	Steps     []PlanStep
	FinalBase string // base filename of the finished artifact
	FinalExt  string // expected extension, resolver handles mismatches
}

// IntermediateBases lists the output bases of every non-final step, used for
// partial-artifact cleanup when a plan aborts.
func (p *InvocationPlan) IntermediateBases() []string {
	var bases []string
	for _, step := range p.Steps {
		if step.OutputBase != "" && step.OutputBase != p.FinalBase {
			bases = append(bases, step.OutputBase)
		}
	}
	return bases
}

// EngineInvocation is a fully built external command: binary plus argument
// list, with the secret values recorded separately so logging can mask them.
type EngineInvocation struct {
	Engine     EngineKind
	Binary     string
	Args       []string
	OutputHint string   // expected output path before resolution
	Secrets    []string // values that must never reach a log line
}

// RunResult captures one finished engine process
type RunResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Elapsed  time.Duration
}

// Artifact is a located, nonzero-size output file
type Artifact struct {
	Path     string
	Size     int64
	MIMEHint string
}
