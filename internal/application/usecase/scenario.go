package usecase

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bnema/dragkit/internal/domain/entity"
)

// Scenario describes a scene of zones and a scripted gesture.
type Scenario struct {
	Name  string         `yaml:"name"`
	Areas []AreaSpec     `yaml:"areas"`
	Zones []ZoneSpec     `yaml:"zones"`
	Steps []ScenarioStep `yaml:"steps"`
}

// AreaSpec declares a drop area.
type AreaSpec struct {
	ID     string `yaml:"id"`
	Policy string `yaml:"policy"`
}

// ZoneSpec declares a drop zone and its children.
type ZoneSpec struct {
	ID     string   `yaml:"id"`
	Layout string   `yaml:"layout"`
	Area   string   `yaml:"area"`
	Kinds  []string `yaml:"kinds"`
	// Policy is a JavaScript acceptance expression.
	Policy string `yaml:"policy"`
	Bounds Box    `yaml:"bounds"`
	// ItemSize lays out items without explicit bounds along the layout axis.
	ItemSize Size `yaml:"item_size"`
	// Columns wraps auto-laid grid items.
	Columns int        `yaml:"columns"`
	Items   []ItemSpec `yaml:"items"`
}

// ItemSpec declares a child of a zone. Items with a payload are drag sources.
type ItemSpec struct {
	ID      string            `yaml:"id"`
	Bounds  *Box              `yaml:"bounds"`
	Payload map[string]string `yaml:"payload"`
}

// Box is a rectangle in client space.
type Box struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Size is a width and height.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Step actions.
const (
	ActionStart = "start"
	ActionMove  = "move"
	ActionLeave = "leave"
	ActionDrop  = "drop"
	ActionEnd   = "end"
	ActionWait  = "wait"
)

// ScenarioStep is one scripted input.
//
//	start  source, at   dragstart on a source
//	move   at           drag + dragover
//	leave  at           dragleave; ignored while at is inside the hovered zone
//	drop   at           drop + dragend
//	end    at           dragend without a drop
//	wait   for          advance time
type ScenarioStep struct {
	Action string        `yaml:"action"`
	Source string        `yaml:"source"`
	At     []float64     `yaml:"at"`
	For    time.Duration `yaml:"for"`
}

func (b Box) rect() entity.Rect {
	return entity.Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}

func (s ScenarioStep) point() entity.Point {
	if len(s.At) != 2 {
		return entity.Point{}
	}
	return entity.Point{X: s.At[0], Y: s.At[1]}
}

// ParseScenario decodes and validates a YAML scenario.
func ParseScenario(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("scenario is empty")
		}
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// ParseScenarioBytes is ParseScenario over a byte slice.
func ParseScenarioBytes(data []byte) (*Scenario, error) {
	return ParseScenario(bytes.NewReader(data))
}

// Validate checks ids, references and step arguments.
func (sc *Scenario) Validate() error {
	if len(sc.Zones) == 0 {
		return fmt.Errorf("scenario %q declares no zones", sc.Name)
	}

	areas := make(map[string]bool, len(sc.Areas))
	for _, a := range sc.Areas {
		if a.ID == "" {
			return fmt.Errorf("area without id")
		}
		areas[a.ID] = true
	}

	ids := make(map[string]bool)
	sources := make(map[string]bool)
	for _, z := range sc.Zones {
		if z.ID == "" {
			return fmt.Errorf("zone without id")
		}
		if ids[z.ID] {
			return fmt.Errorf("duplicate id %q", z.ID)
		}
		ids[z.ID] = true
		if z.Area != "" && !areas[z.Area] {
			return fmt.Errorf("zone %q references unknown area %q", z.ID, z.Area)
		}
		for _, it := range z.Items {
			if it.ID == "" {
				return fmt.Errorf("zone %q has an item without id", z.ID)
			}
			if ids[it.ID] {
				return fmt.Errorf("duplicate id %q", it.ID)
			}
			ids[it.ID] = true
			if it.Bounds == nil && (z.ItemSize.Width <= 0 || z.ItemSize.Height <= 0) {
				return fmt.Errorf("item %q has no bounds and zone %q has no item_size", it.ID, z.ID)
			}
			if len(it.Payload) > 0 {
				sources[it.ID] = true
			}
		}
	}

	for i, st := range sc.Steps {
		switch st.Action {
		case ActionStart:
			if !sources[st.Source] {
				return fmt.Errorf("step %d: %q is not a drag source", i+1, st.Source)
			}
			fallthrough
		case ActionMove, ActionDrop, ActionEnd:
			if len(st.At) != 2 {
				return fmt.Errorf("step %d: %s needs at: [x, y]", i+1, st.Action)
			}
		case ActionWait:
			if st.For <= 0 {
				return fmt.Errorf("step %d: wait needs a positive duration", i+1)
			}
		case ActionLeave:
		default:
			return fmt.Errorf("step %d: unknown action %q", i+1, st.Action)
		}
	}
	return nil
}
