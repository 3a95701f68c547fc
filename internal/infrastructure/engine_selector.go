package infrastructure

import (
	"fmt"
	"strings"

	"github.com/yourusername/vidgrab-go/internal/domain"
)

// defaultEngineTable is the static platform -> primary engine lookup.
var defaultEngineTable = map[domain.Platform]domain.EngineKind{
	domain.PlatformYouTube:   domain.EngineYTDLP,
	domain.PlatformInstagram: domain.EngineYTDLP,
	domain.PlatformTikTok:    domain.EngineYTDLP,
}

// decoupledPlatforms gates its high-quality formats behind separate
// video-only and audio-only streams that need a local merge.
var decoupledPlatforms = map[domain.Platform]bool{
	domain.PlatformYouTube: true,
}

// EngineSelector maps (request, platform) to an ordered invocation plan
type EngineSelector struct {
	engines map[domain.Platform]domain.EngineKind
}

// NewEngineSelector builds a selector from the static engine table plus any
// configured per-platform overrides.
func NewEngineSelector(config *domain.EngineConfig) *EngineSelector {
	engines := make(map[domain.Platform]domain.EngineKind, len(defaultEngineTable))
	for platform, engine := range defaultEngineTable {
		engines[platform] = engine
	}
	for platform, engine := range config.Overrides {
		engines[domain.Platform(platform)] = domain.EngineKind(engine)
	}
	return &EngineSelector{engines: engines}
}

// SelectPlan produces the invocation plan for a request. An unknown or
// unconfigured platform yields an UnsupportedPlatform error, not a panic.
func (s *EngineSelector) SelectPlan(req *domain.MediaRequest, platform domain.Platform) (*domain.InvocationPlan, error) {
	engine, ok := s.engines[platform]
	if !ok {
		return nil, domain.NewDownloadError(domain.FailureUnsupportedPlatform,
			fmt.Sprintf("no engine configured for %q", platform), nil)
	}

	base := req.BaseName()
	plan := &domain.InvocationPlan{
		Platform:  platform,
		FinalBase: base,
		FinalExt:  req.TargetExt(),
	}

	if req.Format == domain.FormatAudioOnly {
		plan.Steps = []domain.PlanStep{{
			Engine:         engine,
			Action:         domain.ActionExtractAudio,
			URL:            req.URL,
			FormatSelector: "bestaudio/best",
			OutputBase:     base,
		}}
		return plan, nil
	}

	if decoupledPlatforms[platform] {
		// The video-only and audio-only formats are gated, so both fetch
		// steps force the elevated-auth extractor path.
		plan.Steps = []domain.PlanStep{
			{
				Engine:          engine,
				Action:          domain.ActionDownload,
				URL:             req.URL,
				FormatSelector:  videoStreamSelector(req.Quality),
				OutputBase:      base + "_video",
				ForceAuthClient: true,
			},
			{
				Engine:          engine,
				Action:          domain.ActionDownload,
				URL:             req.URL,
				FormatSelector:  "bestaudio[ext=m4a]/bestaudio",
				OutputBase:      base + "_audio",
				ForceAuthClient: true,
			},
			{
				Engine:     domain.EngineFFmpeg,
				Action:     domain.ActionMerge,
				OutputBase: base,
			},
		}
		return plan, nil
	}

	plan.Steps = []domain.PlanStep{{
		Engine:         engine,
		Action:         domain.ActionDownload,
		URL:            req.URL,
		FormatSelector: "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best",
		MergeContainer: "mp4",
		OutputBase:     base,
	}}
	return plan, nil
}

// videoStreamSelector builds the video-only fallback chain for a requested
// quality. Specific qualities ("1080p", "720") become a height cap with the
// unrestricted streams as later fallbacks.
func videoStreamSelector(quality string) string {
	if quality == "" || quality == domain.QualityHighest {
		return "bestvideo[ext=mp4]/bestvideo"
	}
	height := strings.TrimSuffix(quality, "p")
	return fmt.Sprintf("bestvideo[height<=%s][ext=mp4]/bestvideo[height<=%s]/bestvideo", height, height)
}
