package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bnema/dragkit/internal/application/port"
	"github.com/bnema/dragkit/internal/application/usecase"
	"github.com/bnema/dragkit/internal/domain/entity"
)

var (
	handoffKind      string
	handoffData      string
	handoffFile      string
	handoffPageHost  string
	handoffAppID     string
	handoffMIME      string
	handoffAt        string
	handoffTarget    string
	handoffSkipOffer bool
	handoffJSON      bool
)

var handoffCmd = &cobra.Command{
	Use:   "handoff",
	Short: "Drop a host payload into an isolated page",
	Long: `Run both ends of a cross-boundary drop in one process: the host mints a
one-time token and pushes the metadata over the wire protocol, then a
native drop carrying only the application id reaches the page bridge,
which redeems the token and re-dispatches the real payload.

Bridge and token settings come from the [bridge] and [host] config sections.

Examples:
  dragkit handoff --kind string --data "hello"
  dragkit handoff --kind html --data "<p>Hi</p>" --page-host docs.example.com
  dragkit handoff --kind files --file ./report.pdf`,
	RunE: runHandoff,
}

func init() {
	rootCmd.AddCommand(handoffCmd)

	handoffCmd.Flags().StringVar(&handoffKind, "kind", string(entity.KindString), "payload kind: string, note, url, html, resource or files")
	handoffCmd.Flags().StringVar(&handoffData, "data", "", "payload content")
	handoffCmd.Flags().StringVar(&handoffFile, "file", "", "read the payload from a file")
	handoffCmd.Flags().StringVar(&handoffPageHost, "page-host", "app.local", "hostname of the receiving page")
	handoffCmd.Flags().StringVar(&handoffAppID, "app-id", "", "application id carried by the native drop (default: random)")
	handoffCmd.Flags().StringVar(&handoffMIME, "mime", "", "MIME type for resource and files payloads")
	handoffCmd.Flags().StringVar(&handoffAt, "at", "0,0", "drop position x,y")
	handoffCmd.Flags().StringVar(&handoffTarget, "target", "body", "id of the element the drop lands on")
	handoffCmd.Flags().BoolVar(&handoffSkipOffer, "skip-offer", false, "drop without pushing metadata first")
	handoffCmd.Flags().BoolVar(&handoffJSON, "json", false, "output as JSON")
	handoffCmd.MarkFlagsMutuallyExclusive("data", "file")
}

type handoffJSONOutput struct {
	Token     string            `json:"token,omitempty"`
	Delivered bool              `json:"delivered"`
	Event     string            `json:"event,omitempty"`
	Items     map[string]string `json:"items,omitempty"`
	Files     []string          `json:"files,omitempty"`
}

func runHandoff(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	kind := entity.PayloadKind(handoffKind)
	switch kind {
	case entity.KindString, entity.KindNote, entity.KindURL, entity.KindHTML, entity.KindResource, entity.KindFiles:
	default:
		return fmt.Errorf("unknown payload kind %q", handoffKind)
	}

	at, err := parsePoint(handoffAt)
	if err != nil {
		return fmt.Errorf("--at: %w", err)
	}

	data := []byte(handoffData)
	var name string
	if handoffFile != "" {
		data, err = os.ReadFile(handoffFile)
		if err != nil {
			return fmt.Errorf("read payload: %w", err)
		}
		name = filepath.Base(handoffFile)
	}

	appID := handoffAppID
	if appID == "" {
		appID = uuid.NewString()
	}

	uc := usecase.NewHandoffUseCase(app.HandoffOptions())
	out, err := uc.Execute(app.Ctx(), usecase.HandoffInput{
		PageHost:  handoffPageHost,
		AppID:     appID,
		Identity:  port.PayloadIdentity{ID: appID, Kind: kind, Name: name, MIMEType: handoffMIME},
		Data:      data,
		At:        at,
		TargetID:  handoffTarget,
		SkipOffer: handoffSkipOffer,
	})
	if err != nil {
		return err
	}

	if handoffJSON {
		res := handoffJSONOutput{Token: out.Token, Delivered: out.Delivered}
		if out.Event != nil {
			res.Event = string(out.Event.Type)
			res.Items = make(map[string]string)
			for _, typ := range out.Event.Transfer.Types() {
				if typ != "Files" {
					res.Items[typ] = out.Event.Transfer.GetData(typ)
				}
			}
			for _, f := range out.Event.Transfer.Files() {
				res.Files = append(res.Files, f.Name)
			}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Print(app.Theme.RenderHandoff(out))
	return nil
}
