package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/vidgrab-go/internal/domain"
)

func newTestSelector() *EngineSelector {
	return NewEngineSelector(&domain.EngineConfig{})
}

func TestSelectPlan_AudioOnlyIsSingleStep(t *testing.T) {
	req := domain.NewMediaRequest("https://www.tiktok.com/@user/video/123", domain.FormatAudioOnly, "", "clip")

	plan, err := newTestSelector().SelectPlan(req, domain.PlatformTikTok)
	require.NoError(t, err)

	require.Len(t, plan.Steps, 1)
	step := plan.Steps[0]
	assert.Equal(t, domain.EngineYTDLP, step.Engine)
	assert.Equal(t, domain.ActionExtractAudio, step.Action)
	assert.Equal(t, "bestaudio/best", step.FormatSelector)
	assert.Equal(t, req.BaseName(), step.OutputBase)
	assert.Equal(t, ".mp3", plan.FinalExt)
}

func TestSelectPlan_CombinedVideoIsSingleStep(t *testing.T) {
	req := domain.NewMediaRequest("https://www.instagram.com/reel/abc/", domain.FormatVideo, "", "reel")

	plan, err := newTestSelector().SelectPlan(req, domain.PlatformInstagram)
	require.NoError(t, err)

	require.Len(t, plan.Steps, 1)
	step := plan.Steps[0]
	assert.Equal(t, domain.ActionDownload, step.Action)
	assert.Equal(t, "mp4", step.MergeContainer)
	assert.Contains(t, step.FormatSelector, "/", "selector should carry a fallback chain")
	assert.False(t, step.ForceAuthClient)
}

func TestSelectPlan_DecoupledVideoIsThreeSteps(t *testing.T) {
	req := domain.NewMediaRequest("https://youtu.be/xyz", domain.FormatVideo, "highest", "vid")

	plan, err := newTestSelector().SelectPlan(req, domain.PlatformYouTube)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 3)

	video, audio, merge := plan.Steps[0], plan.Steps[1], plan.Steps[2]

	assert.Equal(t, domain.ActionDownload, video.Action)
	assert.Contains(t, video.FormatSelector, "bestvideo")
	assert.True(t, video.ForceAuthClient)
	assert.Equal(t, req.BaseName()+"_video", video.OutputBase)

	assert.Equal(t, domain.ActionDownload, audio.Action)
	assert.Contains(t, audio.FormatSelector, "bestaudio")
	assert.True(t, audio.ForceAuthClient)
	assert.Equal(t, req.BaseName()+"_audio", audio.OutputBase)

	assert.Equal(t, domain.EngineFFmpeg, merge.Engine)
	assert.Equal(t, domain.ActionMerge, merge.Action)
	assert.Equal(t, req.BaseName(), merge.OutputBase)

	assert.ElementsMatch(t, []string{video.OutputBase, audio.OutputBase}, plan.IntermediateBases())
}

func TestSelectPlan_SpecificQualityAddsHeightCap(t *testing.T) {
	req := domain.NewMediaRequest("https://youtu.be/xyz", domain.FormatVideo, "720p", "vid")

	plan, err := newTestSelector().SelectPlan(req, domain.PlatformYouTube)
	require.NoError(t, err)

	assert.Contains(t, plan.Steps[0].FormatSelector, "height<=720")
	assert.Contains(t, plan.Steps[0].FormatSelector, "/bestvideo", "unrestricted stream should remain as fallback")
}

func TestSelectPlan_UnknownPlatformIsUnsupported(t *testing.T) {
	req := domain.NewMediaRequest("https://example.com/x", domain.FormatVideo, "", "x")

	_, err := newTestSelector().SelectPlan(req, domain.PlatformUnknown)
	require.Error(t, err)

	de, ok := domain.AsDownloadError(err)
	require.True(t, ok)
	assert.Equal(t, domain.FailureUnsupportedPlatform, de.Kind)
}

func TestSelectPlan_OverrideReplacesEngine(t *testing.T) {
	selector := NewEngineSelector(&domain.EngineConfig{
		Overrides: map[string]string{"tiktok": "ffmpeg"},
	})
	req := domain.NewMediaRequest("https://www.tiktok.com/@u/video/1", domain.FormatVideo, "", "t")

	plan, err := selector.SelectPlan(req, domain.PlatformTikTok)
	require.NoError(t, err)
	assert.Equal(t, domain.EngineKind("ffmpeg"), plan.Steps[0].Engine)
}
