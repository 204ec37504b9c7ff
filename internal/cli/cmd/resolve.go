package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/dragkit/internal/dnd"
	"github.com/bnema/dragkit/internal/domain/entity"
	"github.com/bnema/dragkit/internal/infrastructure/scene"
)

var (
	resolveLayout    string
	resolveContainer string
	resolveScroll    string
	resolveItems     []string
	resolveAt        string
	resolveJSON      bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Compute the insertion index for a pointer position",
	Long: `Measure a zone made of the given item rectangles and resolve where a
drop at the pointer would insert, along with the indicator rectangle.

Rectangles are x,y,w,h before scrolling; the pointer is x,y in client space.

Examples:
  dragkit resolve --layout vertical --item 0,0,100,20 --item 0,20,100,20 --at 10,25
  dragkit resolve --layout grid --container 0,0,200,200 --scroll 0,40 \
    --item 0,0,50,50 --item 50,0,50,50 --at 60,30`,
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringVar(&resolveLayout, "layout", "vertical", "zone layout: horizontal, vertical, grid or none")
	resolveCmd.Flags().StringVar(&resolveContainer, "container", "", "container bounds x,y,w,h (default: union of items)")
	resolveCmd.Flags().StringVar(&resolveScroll, "scroll", "0,0", "container scroll offset x,y")
	resolveCmd.Flags().StringArrayVar(&resolveItems, "item", nil, "item bounds x,y,w,h (repeatable, in order)")
	resolveCmd.Flags().StringVar(&resolveAt, "at", "", "pointer x,y")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "output as JSON")
	_ = resolveCmd.MarkFlagRequired("at")
}

type resolveJSONOutput struct {
	Layout    string      `json:"layout"`
	Index     int         `json:"index"`
	Position  string      `json:"position"`
	Indicator entity.Rect `json:"indicator"`
}

func runResolve(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	layout, err := dnd.ParseLayout(resolveLayout)
	if err != nil {
		return err
	}
	pointer, err := parsePoint(resolveAt)
	if err != nil {
		return fmt.Errorf("--at: %w", err)
	}
	scroll, err := parsePoint(resolveScroll)
	if err != nil {
		return fmt.Errorf("--scroll: %w", err)
	}

	container, err := buildContainer(resolveContainer, resolveItems)
	if err != nil {
		return err
	}
	container.SetScroll(scroll)

	snap := dnd.TakeSnapshot(container)
	pl := dnd.ResolveIndex(layout, snap, pointer, app.ResolveOptions())
	indicator := dnd.IndicatorRect(layout, snap, pl)

	if resolveJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resolveJSONOutput{
			Layout:    layout.String(),
			Index:     pl.Index,
			Position:  pl.Position.String(),
			Indicator: indicator,
		})
	}

	fmt.Print(app.Theme.RenderPlacement(layout, pointer, pl, indicator))
	return nil
}

// buildContainer creates a zone node whose children are the given items.
// Without explicit bounds the container covers every item.
func buildContainer(bounds string, items []string) (*scene.Node, error) {
	rects := make([]entity.Rect, len(items))
	for i, s := range items {
		r, err := parseRect(s)
		if err != nil {
			return nil, fmt.Errorf("--item %d: %w", i+1, err)
		}
		rects[i] = r
	}

	var box entity.Rect
	if bounds != "" {
		r, err := parseRect(bounds)
		if err != nil {
			return nil, fmt.Errorf("--container: %w", err)
		}
		box = r
	} else {
		box = unionRect(rects)
	}

	container := scene.NewNode("zone", box).WithAttr(entity.AttrZone, "zone")
	for i, r := range rects {
		container.Append(scene.NewNode(fmt.Sprintf("item-%d", i), r).WithAttr(entity.AttrSource, ""))
	}
	return container, nil
}

func unionRect(rects []entity.Rect) entity.Rect {
	if len(rects) == 0 {
		return entity.Rect{}
	}
	minX, minY := rects[0].Left(), rects[0].Top()
	maxX, maxY := rects[0].Right(), rects[0].Bottom()
	for _, r := range rects[1:] {
		minX = min(minX, r.Left())
		minY = min(minY, r.Top())
		maxX = max(maxX, r.Right())
		maxY = max(maxY, r.Bottom())
	}
	return entity.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
