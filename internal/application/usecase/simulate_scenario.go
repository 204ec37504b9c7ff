package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/dragkit/internal/application/port"
	"github.com/bnema/dragkit/internal/dnd"
	"github.com/bnema/dragkit/internal/domain/entity"
	"github.com/bnema/dragkit/internal/infrastructure/scene"
	"github.com/bnema/dragkit/internal/infrastructure/scheduler"
	"github.com/bnema/dragkit/internal/logging"
)

// SimulateOptions carries the engine tuning applied to every source and zone.
type SimulateOptions struct {
	TickInterval   time.Duration
	Animations     bool
	SettleDuration time.Duration
	VelocityDecay  float64
	VelocityWeight float64
	Resolve        dnd.ResolveOptions
	// Policies compiles zone and area predicates; required when a scenario uses them.
	Policies port.PolicyCompiler
	// Start is the virtual time origin; zero means the Unix epoch.
	Start time.Time
}

// TranscriptLine is one observable effect of the simulation.
type TranscriptLine struct {
	// At is the virtual time elapsed since the scenario started.
	At   time.Duration
	Kind string // "event" or "render"
	Text string
}

func (l TranscriptLine) String() string {
	return fmt.Sprintf("+%-6s %-6s %s", l.At, l.Kind, l.Text)
}

// SimulateScenarioOutput holds the result of a simulation run.
type SimulateScenarioOutput struct {
	Transcript []TranscriptLine
	Events     []entity.DragEvent
	// Zones maps each zone id to its item ids after committed drops were applied.
	Zones map[string][]string
}

// SimulateScenarioUseCase runs a scenario against the engine on a virtual clock.
type SimulateScenarioUseCase struct {
	opts SimulateOptions
}

// NewSimulateScenarioUseCase creates a new SimulateScenarioUseCase.
func NewSimulateScenarioUseCase(opts SimulateOptions) *SimulateScenarioUseCase {
	if opts.Start.IsZero() {
		opts.Start = time.Unix(0, 0).UTC()
	}
	return &SimulateScenarioUseCase{opts: opts}
}

type simulation struct {
	uc     *SimulateScenarioUseCase
	clock  *scheduler.Virtual
	orch   *dnd.Orchestrator
	rec    *scene.Recorder
	root   *scene.Node
	zones  map[string]*scene.Node
	order  []string
	out    *SimulateScenarioOutput
	opSeq  int
	hooks  []func(context.Context, *dnd.Orchestrator)
	detach []func()
}

// Execute builds the scene, replays the steps and returns the transcript.
// Extra bus listeners can be attached through hooks before the first step.
func (uc *SimulateScenarioUseCase) Execute(ctx context.Context, sc *Scenario, hooks ...func(context.Context, *dnd.Orchestrator)) (*SimulateScenarioOutput, error) {
	if sc == nil {
		return nil, fmt.Errorf("scenario is nil")
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	log := logging.FromContext(ctx)
	log.Debug().Str("scenario", sc.Name).Int("steps", len(sc.Steps)).Msg("simulating scenario")

	sim := &simulation{
		uc:    uc,
		clock: scheduler.NewVirtual(uc.opts.Start),
		zones: make(map[string]*scene.Node),
		out:   &SimulateScenarioOutput{Zones: make(map[string][]string)},
		hooks: hooks,
	}
	defer sim.close()

	if err := sim.build(ctx, sc); err != nil {
		return nil, err
	}
	for i, st := range sc.Steps {
		if err := sim.step(ctx, st); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, st.Action, err)
		}
	}

	for _, id := range sim.order {
		items := sim.zones[id].Children()
		ids := make([]string, len(items))
		for i, it := range items {
			ids[i] = it.ID()
		}
		sim.out.Zones[id] = ids
	}
	return sim.out, nil
}

func (s *simulation) elapsed() time.Duration {
	return s.clock.Now().Sub(s.uc.opts.Start)
}

func (s *simulation) emit(kind, text string) {
	s.out.Transcript = append(s.out.Transcript, TranscriptLine{At: s.elapsed(), Kind: kind, Text: text})
}

func (s *simulation) close() {
	for i := len(s.detach) - 1; i >= 0; i-- {
		s.detach[i]()
	}
}

func (s *simulation) build(ctx context.Context, sc *Scenario) error {
	s.orch = dnd.NewOrchestrator(ctx, dnd.Options{
		Clock:  s.clock,
		Frames: s.clock,
		NewID: func() entity.OperationID {
			s.opSeq++
			return entity.OperationID(fmt.Sprintf("op-%d", s.opSeq))
		},
	})
	s.rec = scene.NewRecorder(s.clock)
	s.rec.Sink = func(line string) { s.emit("render", line) }

	s.detach = append(s.detach,
		s.orch.Bus().SubscribeAll(func(_ context.Context, ev entity.DragEvent) {
			s.out.Events = append(s.out.Events, ev)
			s.emit("event", FormatEvent(ev))
		}),
		s.orch.Bus().Subscribe(entity.EventDragEnd, s.applyDrop),
	)
	for _, hook := range s.hooks {
		hook(ctx, s.orch)
	}

	areas := make(map[string]*dnd.Area, len(sc.Areas))
	for _, a := range sc.Areas {
		policy, err := s.compile(a.Policy)
		if err != nil {
			return fmt.Errorf("area %q: %w", a.ID, err)
		}
		areas[a.ID] = dnd.NewArea(entity.AreaID(a.ID), policy)
	}

	s.root = scene.NewNode("root", entity.Rect{})
	for _, zs := range sc.Zones {
		if err := s.buildZone(ctx, zs, areas); err != nil {
			return err
		}
	}
	return nil
}

func (s *simulation) compile(source string) (port.AcceptPolicy, error) {
	if strings.TrimSpace(source) == "" {
		return nil, nil
	}
	if s.uc.opts.Policies == nil {
		return nil, fmt.Errorf("policy %q given but no policy compiler configured", source)
	}
	return s.uc.opts.Policies.Compile(source)
}

func (s *simulation) buildZone(ctx context.Context, zs ZoneSpec, areas map[string]*dnd.Area) error {
	layout, err := dnd.ParseLayout(zs.Layout)
	if err != nil {
		return fmt.Errorf("zone %q: %w", zs.ID, err)
	}
	policy, err := s.compile(zs.Policy)
	if err != nil {
		return fmt.Errorf("zone %q: %w", zs.ID, err)
	}

	container := scene.NewNode(zs.ID, zs.Bounds.rect())
	s.root.Append(container)
	s.zones[zs.ID] = container
	s.order = append(s.order, zs.ID)

	kinds := make([]entity.PayloadKind, len(zs.Kinds))
	for i, k := range zs.Kinds {
		kinds[i] = entity.PayloadKind(k)
	}

	zone := dnd.NewZone(ctx, s.orch, container, dnd.ZoneOptions{
		ID:        entity.ZoneID(zs.ID),
		Layout:    layout,
		Kinds:     kinds,
		Policy:    policy,
		Indicator: s.rec.Indicator(zs.ID),
		Resolve:   s.uc.opts.Resolve,
	})
	if zs.Area != "" {
		areas[zs.Area].Add(zone)
	}

	for i, it := range zs.Items {
		bounds := autoBounds(zs, layout, i)
		if it.Bounds != nil {
			bounds = it.Bounds.rect()
		}
		node := scene.NewNode(it.ID, bounds)
		container.Append(node)

		if len(it.Payload) == 0 {
			continue
		}
		entries := make(map[entity.PayloadKind]any, len(it.Payload))
		for k, v := range it.Payload {
			entries[entity.PayloadKind(k)] = v
		}
		dnd.NewSource(ctx, s.orch, node, dnd.SourceOptions{
			ID:             entity.SourceID(it.ID),
			Zone:           entity.ZoneID(zs.ID),
			Payload:        entity.NewPayload(entries),
			Previews:       s.rec,
			TickInterval:   s.uc.opts.TickInterval,
			Animations:     s.uc.opts.Animations,
			SettleDuration: s.uc.opts.SettleDuration,
			VelocityDecay:  s.uc.opts.VelocityDecay,
			VelocityWeight: s.uc.opts.VelocityWeight,
		})
	}
	return nil
}

// autoBounds places the i-th item of a zone along its layout axis.
func autoBounds(zs ZoneSpec, layout dnd.Layout, i int) entity.Rect {
	w, h := zs.ItemSize.Width, zs.ItemSize.Height
	origin := entity.Point{X: zs.Bounds.X, Y: zs.Bounds.Y}
	switch layout {
	case dnd.LayoutHorizontal:
		return entity.Rect{X: origin.X + float64(i)*w, Y: origin.Y, Width: w, Height: h}
	case dnd.LayoutGrid:
		cols := zs.Columns
		if cols <= 0 {
			cols = 1
		}
		return entity.Rect{X: origin.X + float64(i%cols)*w, Y: origin.Y + float64(i/cols)*h, Width: w, Height: h}
	default:
		return entity.Rect{X: origin.X, Y: origin.Y + float64(i)*h, Width: w, Height: h}
	}
}

// applyDrop moves the dragged item into its target zone for committed drops.
func (s *simulation) applyDrop(_ context.Context, ev entity.DragEvent) {
	op := ev.Operation
	if op.Cancelled || !op.HasIndex {
		return
	}
	item := s.root.Find(string(op.Source))
	target := s.zones[string(op.ToZone)]
	if item == nil || target == nil {
		return
	}
	target.Insert(op.Index, item)
}

func (s *simulation) step(ctx context.Context, st ScenarioStep) error {
	at := st.point()
	switch st.Action {
	case ActionStart:
		if err := s.orch.Dispatch(ctx, &entity.NativeEvent{
			Type:     entity.EventTypeDragStart,
			TargetID: st.Source,
			Client:   at,
			Transfer: entity.NewTransfer(),
		}); err != nil {
			return err
		}
	case ActionMove:
		s.dispatch(ctx, entity.EventTypeDrag, at)
		s.dispatch(ctx, entity.EventTypeDragOver, at)
	case ActionLeave:
		s.dispatch(ctx, entity.EventTypeDragLeave, at)
	case ActionDrop:
		s.dispatch(ctx, entity.EventTypeDrop, at)
		s.dispatch(ctx, entity.EventTypeDragEnd, at)
	case ActionEnd:
		s.dispatch(ctx, entity.EventTypeDragEnd, at)
	case ActionWait:
		s.clock.Advance(st.For)
	}
	s.clock.Frame()
	return nil
}

func (s *simulation) dispatch(ctx context.Context, typ entity.NativeEventType, at entity.Point) {
	_ = s.orch.Dispatch(ctx, &entity.NativeEvent{Type: typ, Client: at, Screen: at})
}

// FormatEvent renders a bus event as a single transcript line.
func FormatEvent(ev entity.DragEvent) string {
	op := ev.Operation
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", ev.Kind, op.ID)
	switch ev.Kind {
	case entity.EventDragStart:
		fmt.Fprintf(&b, " source=%s from=%s", op.Source, op.FromZone)
	case entity.EventDrag:
		fmt.Fprintf(&b, " pointer=%.0f,%.0f", ev.Pointer.X, ev.Pointer.Y)
		if ev.Zone != "" {
			fmt.Fprintf(&b, " over=%s", ev.Zone)
		}
	case entity.EventDragTargetEnter, entity.EventDragTargetLeave:
		fmt.Fprintf(&b, " zone=%s", ev.Zone)
	case entity.EventDragEnd:
		if op.Cancelled {
			b.WriteString(" cancelled")
			break
		}
		fmt.Fprintf(&b, " to=%s", op.ToZone)
		if op.Area != "" {
			fmt.Fprintf(&b, " area=%s", op.Area)
		}
		if op.HasIndex {
			fmt.Fprintf(&b, " index=%d %s", op.Index, op.Position)
		}
	}
	return b.String()
}
