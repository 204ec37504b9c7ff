package dnd_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bnema/dragkit/internal/dnd"
	"github.com/bnema/dragkit/internal/domain/entity"
	"github.com/bnema/dragkit/internal/infrastructure/scene"
	"github.com/bnema/dragkit/internal/infrastructure/scheduler"
	"github.com/bnema/dragkit/internal/logging"
)

var epoch = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

type harness struct {
	ctx    context.Context
	clock  *scheduler.Virtual
	orch   *dnd.Orchestrator
	rec    *scene.Recorder
	events []entity.DragEvent
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{ctx: testContext(), clock: scheduler.NewVirtual(epoch)}
	seq := 0
	h.orch = dnd.NewOrchestrator(h.ctx, dnd.Options{
		Clock:  h.clock,
		Frames: h.clock,
		NewID: func() entity.OperationID {
			seq++
			return entity.OperationID(fmt.Sprintf("op-%d", seq))
		},
	})
	h.rec = scene.NewRecorder(h.clock)
	h.orch.Bus().SubscribeAll(func(_ context.Context, ev entity.DragEvent) {
		h.events = append(h.events, ev)
	})
	return h
}

func (h *harness) kinds() []string {
	out := make([]string, len(h.events))
	for i, ev := range h.events {
		out[i] = ev.Kind.String()
	}
	return out
}

func (h *harness) last() entity.DragEvent {
	return h.events[len(h.events)-1]
}

func (h *harness) send(typ entity.NativeEventType, x, y float64) *entity.NativeEvent {
	ev := &entity.NativeEvent{Type: typ, Client: entity.Point{X: x, Y: y}}
	_ = h.orch.Dispatch(h.ctx, ev)
	return ev
}

func (h *harness) start(src string, x, y float64) error {
	return h.orch.Dispatch(h.ctx, &entity.NativeEvent{
		Type:     entity.EventTypeDragStart,
		TargetID: src,
		Client:   entity.Point{X: x, Y: y},
		Transfer: entity.NewTransfer(),
	})
}

// row builds a 150x20 container at y with n 50x20 items laid out left to right.
func row(id string, y float64, n int) *scene.Node {
	c := scene.NewNode(id, entity.Rect{X: 0, Y: y, Width: 150, Height: 20})
	for i := 0; i < n; i++ {
		itemID := fmt.Sprintf("%s-%d", id, i)
		c.Append(scene.NewNode(itemID, entity.Rect{X: float64(i) * 50, Y: y, Width: 50, Height: 20}).
			WithAttr(entity.AttrSource, itemID))
	}
	return c
}

func resourcePayload() entity.Payload {
	return entity.NewPayload(map[entity.PayloadKind]any{entity.KindResource: "res-1"})
}
