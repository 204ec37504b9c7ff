package port

//go:generate mockery --name=Indicator --output=mocks --outpkg=mocks --with-expecter

import (
	"time"

	"github.com/bnema/dragkit/internal/domain/entity"
)

// Preview is the floating visual that follows the pointer during a drag.
type Preview interface {
	// MoveTo positions the preview's top-left corner; tilt is in degrees.
	MoveTo(pos entity.Point, tilt float64)
	// Animate moves the preview to target over d and calls done when finished.
	Animate(target entity.Rect, d time.Duration, done func())
	Destroy()
}

// PreviewFactory clones a source element into a preview.
type PreviewFactory interface {
	NewPreview(source Element, bounds entity.Rect) Preview
}

// Indicator draws the insertion marker of a zone.
type Indicator interface {
	Show(rect entity.Rect, position entity.DropPosition)
	Hide()
}
