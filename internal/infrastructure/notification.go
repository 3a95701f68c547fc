package infrastructure

import (
	"fmt"
	"os/exec"

	"go.uber.org/zap"

	"github.com/yourusername/vidgrab-go/internal/domain"
)

// NotificationService sends desktop notifications about finished downloads
type NotificationService struct {
	config *domain.NotificationConfig
	logger *zap.Logger
}

// NewNotificationService creates a notification service
func NewNotificationService(config *domain.NotificationConfig, logger *zap.Logger) *NotificationService {
	return &NotificationService{config: config, logger: logger}
}

// NotifyAcquired reports a completed acquisition
func (n *NotificationService) NotifyAcquired(title string, platform domain.Platform) {
	n.send("Download Ready", fmt.Sprintf("%s (%s)", truncateString(title, 40), platform))
}

// NotifyFailed reports a failed acquisition
func (n *NotificationService) NotifyFailed(title string, platform domain.Platform) {
	n.send("Download Failed", fmt.Sprintf("%s (%s)", truncateString(title, 40), platform))
}

func (n *NotificationService) send(title, message string) {
	if !n.config.Enabled {
		return
	}

	var cmd *exec.Cmd
	switch n.config.Method {
	case "osascript":
		script := fmt.Sprintf(`display notification %q with title %q`, message, title)
		cmd = exec.Command("osascript", "-e", script)
	case "notify-send":
		cmd = exec.Command("notify-send", title, message)
	default:
		n.logger.Warn("Unknown notification method", zap.String("method", n.config.Method))
		return
	}

	if err := cmd.Run(); err != nil {
		n.logger.Debug("Failed to send notification",
			zap.String("method", n.config.Method),
			zap.Error(err))
	}
}

// truncateString truncates a string to the specified length
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
