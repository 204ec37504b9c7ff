package entity

// Common transfer MIME types.
const (
	MIMEText = "text/plain"
	MIMEHTML = "text/html"
	MIMEURIs = "text/uri-list"
)

// DropEffectNone is the drop effect a dragend reports for a cancelled drag.
const DropEffectNone = "none"

// File is a file object attached to a transfer.
type File struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Transfer mirrors a native drag data transfer: typed string items,
// attached files and the negotiated effects.
type Transfer struct {
	items         map[string]string
	order         []string
	files         []File
	DropEffect    string
	EffectAllowed string
}

// NewTransfer returns an empty transfer.
func NewTransfer() *Transfer {
	return &Transfer{items: make(map[string]string)}
}

// SetData stores data under the given type, replacing any previous value.
func (t *Transfer) SetData(mimeType, data string) {
	if t.items == nil {
		t.items = make(map[string]string)
	}
	if _, ok := t.items[mimeType]; !ok {
		t.order = append(t.order, mimeType)
	}
	t.items[mimeType] = data
}

// GetData returns the data for mimeType or "" when absent.
func (t *Transfer) GetData(mimeType string) string {
	if t == nil {
		return ""
	}
	return t.items[mimeType]
}

// HasType reports whether an item of mimeType is present.
func (t *Transfer) HasType(mimeType string) bool {
	if t == nil {
		return false
	}
	_, ok := t.items[mimeType]
	return ok
}

// Types returns item types in insertion order, followed by "Files" when
// files are attached.
func (t *Transfer) Types() []string {
	if t == nil {
		return nil
	}
	types := append([]string(nil), t.order...)
	if len(t.files) > 0 {
		types = append(types, "Files")
	}
	return types
}

// AddFile attaches a file.
func (t *Transfer) AddFile(f File) {
	t.files = append(t.files, f)
}

// Files returns the attached files.
func (t *Transfer) Files() []File {
	if t == nil {
		return nil
	}
	return append([]File(nil), t.files...)
}

// IsEmpty reports whether the transfer carries neither items nor files.
func (t *Transfer) IsEmpty() bool {
	return t == nil || (len(t.items) == 0 && len(t.files) == 0)
}

// Clone returns a deep copy.
func (t *Transfer) Clone() *Transfer {
	if t == nil {
		return nil
	}
	c := NewTransfer()
	for _, k := range t.order {
		c.SetData(k, t.items[k])
	}
	for _, f := range t.files {
		f.Data = append([]byte(nil), f.Data...)
		c.files = append(c.files, f)
	}
	c.DropEffect = t.DropEffect
	c.EffectAllowed = t.EffectAllowed
	return c
}
