//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/vidgrab-go/api"
	"github.com/yourusername/vidgrab-go/internal/app"
	"github.com/yourusername/vidgrab-go/internal/domain"
	"github.com/yourusername/vidgrab-go/internal/infrastructure"
)

// scriptedRunner plays back canned engine results and materializes output
// files instead of spawning real processes.
type scriptedRunner struct {
	steps []func(inv *domain.EngineInvocation) (*domain.RunResult, error)
}

func (r *scriptedRunner) Run(_ context.Context, inv *domain.EngineInvocation, _ time.Duration, _ int64) (*domain.RunResult, error) {
	if len(r.steps) == 0 {
		return &domain.RunResult{ExitCode: 1, Stderr: "unexpected invocation"}, nil
	}
	step := r.steps[0]
	r.steps = r.steps[1:]
	return step(inv)
}

func succeedWithOutput(content string) func(inv *domain.EngineInvocation) (*domain.RunResult, error) {
	return func(inv *domain.EngineInvocation) (*domain.RunResult, error) {
		if inv.OutputHint != "" {
			if err := os.WriteFile(inv.OutputHint, []byte(content), 0644); err != nil {
				return nil, err
			}
		}
		return &domain.RunResult{ExitCode: 0}, nil
	}
}

func succeedWithStdout(stdout string) func(inv *domain.EngineInvocation) (*domain.RunResult, error) {
	return func(inv *domain.EngineInvocation) (*domain.RunResult, error) {
		return &domain.RunResult{ExitCode: 0, Stdout: stdout}, nil
	}
}

func failWith(stderr string) func(inv *domain.EngineInvocation) (*domain.RunResult, error) {
	return func(inv *domain.EngineInvocation) (*domain.RunResult, error) {
		return &domain.RunResult{ExitCode: 1, Stderr: stderr}, nil
	}
}

func setupTestServer(t *testing.T, runner app.Runner) *httptest.Server {
	t.Helper()
	tempDir := t.TempDir()
	logger := zap.NewNop()

	cfg := &domain.DownloadConfig{
		TempDir:           tempDir,
		FilenameMaxLength: domain.DefaultFilenameMaxLength,
		StepTimeout:       time.Minute,
		MaxOutputBytes:    1 << 20,
		CleanupGrace:      50 * time.Millisecond,
	}
	engines := &domain.EngineConfig{YTDLPBinary: "yt-dlp", FFmpegBinary: "ffmpeg"}
	creds := infrastructure.NewCredentialStore(&domain.CredentialConfig{})
	cleaner := infrastructure.NewCleaner(cfg.CleanupGrace, logger)

	orchestrator := app.NewOrchestrator(
		infrastructure.NewEngineSelector(engines),
		infrastructure.NewCommandBuilder(creds, engines, tempDir),
		runner,
		infrastructure.NewArtifactResolver(),
		domain.NewHealthRegistry(),
		cleaner,
		infrastructure.NewNotificationService(&domain.NotificationConfig{}, logger),
		cfg,
		logger,
	)

	router := api.SetupRouter(orchestrator, infrastructure.NewStreamingResponder(cleaner, logger), cfg.FilenameMaxLength, logger)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, payload interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewBuffer(data))
	require.NoError(t, err)
	return resp
}

func TestAPI_Health(t *testing.T) {
	server := setupTestServer(t, &scriptedRunner{})

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestAPI_Info(t *testing.T) {
	runner := &scriptedRunner{steps: []func(*domain.EngineInvocation) (*domain.RunResult, error){
		succeedWithStdout(`{"title":"A Clip","duration":95,"uploader":"creator"}`),
	}}
	server := setupTestServer(t, runner)

	resp := postJSON(t, server.URL+"/api/v1/info", map[string]string{
		"url": "https://youtu.be/abc",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var info map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, "A Clip", info["title"])
	assert.Equal(t, "1:35", info["duration"])
	assert.Equal(t, "youtube", info["platform"])
}

func TestAPI_InfoRequiresURL(t *testing.T) {
	server := setupTestServer(t, &scriptedRunner{})

	resp := postJSON(t, server.URL+"/api/v1/info", map[string]string{})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_DownloadStreamsArtifact(t *testing.T) {
	runner := &scriptedRunner{steps: []func(*domain.EngineInvocation) (*domain.RunResult, error){
		succeedWithOutput("tiktok media bytes"),
	}}
	server := setupTestServer(t, runner)

	resp := postJSON(t, server.URL+"/api/v1/download", map[string]string{
		"url":    "https://www.tiktok.com/@u/video/1",
		"format": "audio",
		"title":  "My Song",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "audio/mpeg", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".mp3")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "tiktok media bytes", string(body))
}

func TestAPI_DownloadUnsupportedPlatform(t *testing.T) {
	server := setupTestServer(t, &scriptedRunner{})

	resp := postJSON(t, server.URL+"/api/v1/download", map[string]string{
		"url": "https://example.com/video",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "unsupported_platform", body["kind"])
}

func TestAPI_DownloadAuthExpiredIsBadGateway(t *testing.T) {
	runner := &scriptedRunner{steps: []func(*domain.EngineInvocation) (*domain.RunResult, error){
		failWith("ERROR: Sign in to confirm you're not a bot"),
	}}
	server := setupTestServer(t, runner)

	resp := postJSON(t, server.URL+"/api/v1/download", map[string]string{
		"url": "https://www.instagram.com/reel/x/",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "auth_expired", body["kind"])
	assert.NotEmpty(t, body["hint"])
}

func TestAPI_EngineHealthReflectsFailures(t *testing.T) {
	runner := &scriptedRunner{steps: []func(*domain.EngineInvocation) (*domain.RunResult, error){
		failWith("ERROR: Sign in to confirm you're not a bot"),
	}}
	server := setupTestServer(t, runner)

	resp := postJSON(t, server.URL+"/api/v1/download", map[string]string{
		"url": "https://youtu.be/abc",
	})
	resp.Body.Close()

	healthResp, err := http.Get(server.URL + "/api/v1/engines/health")
	require.NoError(t, err)
	defer healthResp.Body.Close()

	assert.Equal(t, http.StatusOK, healthResp.StatusCode)

	var health map[string]map[string]interface{}
	require.NoError(t, json.NewDecoder(healthResp.Body).Decode(&health))
	require.Contains(t, health, "youtube")
	assert.Equal(t, false, health["youtube"]["valid"])
}

func TestAPI_DownloadInvalidFormat(t *testing.T) {
	server := setupTestServer(t, &scriptedRunner{})

	resp := postJSON(t, server.URL+"/api/v1/download", map[string]string{
		"url":    "https://youtu.be/abc",
		"format": "flac",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
