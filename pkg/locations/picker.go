package locations

import (
	"errors"
	"strings"
)

// ErrStaleSelection is returned when the selected entry is not among the
// candidates for the current query
var ErrStaleSelection = errors.New("selected location is not in the current results")

// DefaultPlaceholder is shown when nothing is selected
const DefaultPlaceholder = "ex. Amsterdam, AMS"

// Picker is the selection state of one location field. The stored value
// may be a bare code or the composite display form; both normalise to the
// same code.
type Picker struct {
	dir         *Directory
	value       string
	query       string
	open        bool
	placeholder string
	onChange    func(value string)
}

// PickerOption configures a Picker
type PickerOption func(*Picker)

// WithPlaceholder sets the label shown when nothing is selected
func WithPlaceholder(p string) PickerOption {
	return func(pk *Picker) { pk.placeholder = p }
}

// WithOnChange registers a callback fired after every selection
func WithOnChange(fn func(value string)) PickerOption {
	return func(pk *Picker) { pk.onChange = fn }
}

// NewPicker creates a picker over dir (Default() when nil)
func NewPicker(dir *Directory, opts ...PickerOption) *Picker {
	if dir == nil {
		dir = Default()
	}
	p := &Picker{dir: dir, placeholder: DefaultPlaceholder}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Value returns the stored value exactly as set
func (p *Picker) Value() string {
	return p.value
}

// SetValue stores a value without going through the candidate list, used
// when a value arrives from outside (prefill, destination cards)
func (p *Picker) SetValue(v string) {
	p.value = v
}

// Code returns the normalised code of the stored value
func (p *Picker) Code() string {
	return ExtractCode(p.value)
}

// Selected returns the directory entry for the stored value, if known
func (p *Picker) Selected() (Entry, bool) {
	if p.value == "" {
		return Entry{}, false
	}
	return p.dir.Lookup(p.Code())
}

// Label is derived on every call: "City, CODE" for known codes, the raw
// value for free text, the placeholder when empty
func (p *Picker) Label() string {
	if e, ok := p.Selected(); ok {
		return e.City + ", " + e.Code
	}
	if p.value != "" {
		return p.value
	}
	return p.placeholder
}

// HasValue reports whether anything is selected
func (p *Picker) HasValue() bool {
	return strings.TrimSpace(p.value) != ""
}

// Query returns the in-progress search text
func (p *Picker) Query() string {
	return p.query
}

// IsOpen reports whether the picker surface is open
func (p *Picker) IsOpen() bool {
	return p.open
}

// Open shows the picker surface
func (p *Picker) Open() {
	p.open = true
}

// Close hides the picker surface and drops the query
func (p *Picker) Close() {
	p.open = false
	p.query = ""
}

// OnSearchChange updates the query
func (p *Picker) OnSearchChange(query string) {
	p.query = query
}

// Candidates recomputes the result list for the current query. Results are
// never cached, so a selection is always checked against the live list.
func (p *Picker) Candidates() []Entry {
	return p.dir.Search(p.query)
}

// OnSelect stores entry if it is one of the current candidates, then clears
// the query and closes the surface
func (p *Picker) OnSelect(entry Entry) error {
	found := false
	for _, c := range p.Candidates() {
		if strings.EqualFold(c.Code, entry.Code) {
			found = true
			entry = c
			break
		}
	}
	if !found {
		return ErrStaleSelection
	}

	p.value = Format(entry)
	p.Close()
	if p.onChange != nil {
		p.onChange(p.value)
	}
	return nil
}

// Clear removes the selection
func (p *Picker) Clear() {
	p.value = ""
}

// SameLocation reports whether two stored values refer to the same code
func SameLocation(a, b string) bool {
	ca, cb := ExtractCode(a), ExtractCode(b)
	return ca != "" && strings.EqualFold(ca, cb)
}
