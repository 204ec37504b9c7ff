package styles

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dragkit/internal/infrastructure/config"
)

// ConfigRenderer renders config status messages with styled output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderPaths renders the config file and journal locations.
func (r *ConfigRenderer) RenderPaths(configFile, journalPath string, journalEnabled bool) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	journal := r.theme.Subtle.Render(journalPath)
	if !journalEnabled {
		journal = r.theme.Subtle.Render("disabled")
	}
	return fmt.Sprintf("\n  %s Config  %s\n  %s Journal %s\n",
		iconStyle.Render(IconConfig),
		r.theme.Subtle.Render(configFile),
		iconStyle.Render(IconDatabase),
		journal,
	)
}

// RenderSchemaWritten renders the path of a written schema file.
func (r *ConfigRenderer) RenderSchemaWritten(path string) string {
	return fmt.Sprintf("\n  %s Schema written to %s\n",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Subtle.Render(path),
	)
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	return fmt.Sprintf("\n  %s %s\n", r.theme.ErrorStyle.Render(IconX), r.theme.ErrorStyle.Render(err.Error()))
}

// RenderReloaded renders a one-line summary of a reloaded configuration.
func (r *ConfigRenderer) RenderReloaded(cfg *config.Config) string {
	return fmt.Sprintf("  %s %s reloaded: log %s, tick %s, retry %dx%s, ttl %s\n",
		r.theme.Subtle.Render(time.Now().Format("15:04:05")),
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Highlight.Render(cfg.Logging.Level),
		cfg.Drag.TickInterval,
		cfg.Bridge.RetryAttempts,
		cfg.Bridge.RetryDelay,
		cfg.Host.TokenTTL,
	)
}
