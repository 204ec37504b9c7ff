package bridge

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/bnema/dragkit/internal/application/port"
	"github.com/bnema/dragkit/internal/domain/entity"
)

const defaultFileMIME = "application/octet-stream"

// Reconstruct builds a native transfer from payload bytes fetched from the host.
// Text-like kinds become string items; resources and files become an
// attached file object.
func Reconstruct(identity port.PayloadIdentity, data []byte) (*entity.Transfer, error) {
	t := entity.NewTransfer()
	t.EffectAllowed = "copy"

	switch identity.Kind {
	case entity.KindString, entity.KindNote:
		text, err := utf8Text(data)
		if err != nil {
			return nil, fmt.Errorf("reconstruct %s: %w", identity.Kind, err)
		}
		t.SetData(entity.MIMEText, text)

	case entity.KindURL:
		text, err := utf8Text(data)
		if err != nil {
			return nil, fmt.Errorf("reconstruct url: %w", err)
		}
		url := strings.TrimSpace(text)
		t.SetData(entity.MIMEURIs, url)
		t.SetData(entity.MIMEText, url)

	case entity.KindHTML:
		markup, err := utf8Text(data)
		if err != nil {
			return nil, fmt.Errorf("reconstruct html: %w", err)
		}
		plain, err := HTMLToText(markup)
		if err != nil {
			return nil, fmt.Errorf("reconstruct html: %w", err)
		}
		t.SetData(entity.MIMEHTML, markup)
		t.SetData(entity.MIMEText, plain)

	case entity.KindResource, entity.KindFiles:
		name := identity.Name
		if name == "" {
			name = identity.ID
		}
		mime := identity.MIMEType
		if mime == "" {
			mime = defaultFileMIME
		}
		t.AddFile(entity.File{Name: name, MIMEType: mime, Data: append([]byte(nil), data...)})

	default:
		return nil, fmt.Errorf("reconstruct: unsupported payload kind %q", identity.Kind)
	}
	return t, nil
}

func utf8Text(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.New("payload is not valid UTF-8")
	}
	return string(data), nil
}

// HTMLToText degrades markup to plain text with one line per block element.
// Script and style content is dropped.
func HTMLToText(markup string) (string, error) {
	z := html.NewTokenizer(strings.NewReader(markup))
	var b strings.Builder
	skip := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return "", err
			}
			return normalizeLines(b.String()), nil

		case html.TextToken:
			if skip == 0 {
				b.Write(collapseSpaces(z.Text()))
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch a := atom.Lookup(name); {
			case a == atom.Script || a == atom.Style:
				skip++
			case a == atom.Br:
				b.WriteByte('\n')
			case isBlock(a):
				b.WriteByte('\n')
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			switch a := atom.Lookup(name); {
			case a == atom.Script || a == atom.Style:
				if skip > 0 {
					skip--
				}
			case isBlock(a):
				b.WriteByte('\n')
			}
		}
	}
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Li, atom.Tr, atom.Ul, atom.Ol, atom.Table,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Blockquote, atom.Pre, atom.Section, atom.Article:
		return true
	}
	return false
}

func collapseSpaces(text []byte) []byte {
	var out bytes.Buffer
	space := false
	for _, r := range string(text) {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' {
			if !space {
				out.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		out.WriteRune(r)
	}
	return out.Bytes()
}

// normalizeLines trims every line and drops empty ones.
func normalizeLines(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
