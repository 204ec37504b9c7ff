package scene

import (
	"fmt"
	"time"

	"github.com/bnema/dragkit/internal/application/port"
	"github.com/bnema/dragkit/internal/domain/entity"
)

// Recorder collects the visual side effects of the engine as text lines.
// It stands in for preview and indicator rendering.
type Recorder struct {
	Lines []string
	// Sink, when set, also receives every line as it is recorded.
	Sink  func(line string)
	clock port.Clock
}

// NewRecorder returns a recorder; animations complete through clock timers.
func NewRecorder(clock port.Clock) *Recorder {
	return &Recorder{clock: clock}
}

func (r *Recorder) logf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	r.Lines = append(r.Lines, line)
	if r.Sink != nil {
		r.Sink(line)
	}
}

// NewPreview implements port.PreviewFactory.
func (r *Recorder) NewPreview(source port.Element, bounds entity.Rect) port.Preview {
	r.logf("preview create %s %.0fx%.0f", source.ID(), bounds.Width, bounds.Height)
	return &recordedPreview{r: r, id: source.ID()}
}

type recordedPreview struct {
	r  *Recorder
	id string
}

func (p *recordedPreview) MoveTo(pos entity.Point, tilt float64) {
	p.r.logf("preview move %s %.0f,%.0f tilt=%.1f", p.id, pos.X, pos.Y, tilt)
}

func (p *recordedPreview) Animate(target entity.Rect, d time.Duration, done func()) {
	p.r.logf("preview animate %s to %.0f,%.0f in %s", p.id, target.X, target.Y, d)
	if d <= 0 || p.r.clock == nil {
		done()
		return
	}
	p.r.clock.AfterFunc(d, done)
}

func (p *recordedPreview) Destroy() {
	p.r.logf("preview destroy %s", p.id)
}

// Indicator returns an indicator recording under the given zone name.
func (r *Recorder) Indicator(zone string) port.Indicator {
	return &recordedIndicator{r: r, zone: zone}
}

type recordedIndicator struct {
	r    *Recorder
	zone string
}

func (i *recordedIndicator) Show(rect entity.Rect, position entity.DropPosition) {
	i.r.logf("indicator %s %s at %.0f,%.0f %.0fx%.0f", i.zone, position, rect.X, rect.Y, rect.Width, rect.Height)
}

func (i *recordedIndicator) Hide() {
	i.r.logf("indicator %s hide", i.zone)
}
