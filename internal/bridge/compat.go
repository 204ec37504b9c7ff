package bridge

import (
	"strings"

	"github.com/bnema/dragkit/internal/domain/entity"
)

// matchesHost reports whether host is one of hosts or a subdomain of one.
func matchesHost(host string, hosts []string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if host == "" {
		return false
	}
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" {
			continue
		}
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

// compatPaste turns a rich-text drop into a paste event carrying normalized
// text. Some editors ignore dropped HTML but handle a paste correctly.
func compatPaste(drop *entity.NativeEvent, t *entity.Transfer) (*entity.NativeEvent, bool) {
	if !t.HasType(entity.MIMEHTML) {
		return nil, false
	}
	paste := entity.NewTransfer()
	paste.SetData(entity.MIMEText, NormalizeText(t.GetData(entity.MIMEText)))
	return drop.Redispatch(entity.EventTypePaste, paste), true
}

// NormalizeText converts line endings to \n, replaces non-breaking spaces
// and strips trailing whitespace from every line.
func NormalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\u00a0", " ")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
