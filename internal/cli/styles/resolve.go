package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dragkit/internal/dnd"
	"github.com/bnema/dragkit/internal/domain/entity"
)

// RenderPlacement renders a resolved insertion point and its indicator.
func (t *Theme) RenderPlacement(layout dnd.Layout, pointer entity.Point, pl dnd.Placement, indicator entity.Rect) string {
	iconStyle := lipgloss.NewStyle().Foreground(t.Accent)
	return fmt.Sprintf(
		"\n  %s %s layout, pointer %s\n  %s index %s %s\n  %s indicator %s\n",
		iconStyle.Render(IconBullseye),
		t.Highlight.Render(layout.String()),
		t.Normal.Render(fmt.Sprintf("%g,%g", pointer.X, pointer.Y)),
		iconStyle.Render(IconArrow),
		t.Highlight.Render(fmt.Sprintf("%d", pl.Index)),
		t.MutedBadge(pl.Position.String()),
		iconStyle.Render(IconArrow),
		t.Subtle.Render(fmt.Sprintf("at %g,%g %gx%g", indicator.X, indicator.Y, indicator.Width, indicator.Height)),
	)
}
