package alfred

import (
	"encoding/json"
	"io"
)

// RerunInterval is how long Alfred waits before re-invoking the Script
// Filter when feedback carries a rerun value. Alfred accepts 0.1–5 seconds.
const RerunInterval = 0.5

// System icons used by the workflow, same as the Python original.
var (
	IconInfo    = &Icon{Path: "/System/Library/CoreServices/CoreTypes.bundle/Contents/Resources/ToolbarInfo.icns"}
	IconSync    = &Icon{Path: "/System/Library/CoreServices/CoreTypes.bundle/Contents/Resources/Sync.icns"}
	IconWarning = &Icon{Path: "/System/Library/CoreServices/CoreTypes.bundle/Contents/Resources/AlertCautionIcon.icns"}
)

// Icon is an Alfred result icon.
type Icon struct {
	Path string `json:"path"`
	Type string `json:"type,omitempty"`
}

// Text holds the alternate texts of an item (copy and large type).
type Text struct {
	Copy      string `json:"copy,omitempty"`
	LargeType string `json:"largetype,omitempty"`
}

// Item is a single Script Filter result row.
type Item struct {
	UID          string `json:"uid,omitempty"`
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle,omitempty"`
	Arg          string `json:"arg,omitempty"`
	Autocomplete string `json:"autocomplete,omitempty"`
	Valid        bool   `json:"valid"`
	Icon         *Icon  `json:"icon,omitempty"`
	Text         *Text  `json:"text,omitempty"`
}

// Feedback is the Script Filter response document. A non-zero Rerun asks
// Alfred to invoke the Script Filter again after that many seconds, which
// is how the workflow polls for a background refresh to finish.
type Feedback struct {
	Rerun float64 `json:"rerun,omitempty"`
	Items []*Item `json:"items"`
}

// NewItem appends a new result row and returns it for further decoration.
func (f *Feedback) NewItem(title string) *Item {
	it := &Item{Title: title}
	f.Items = append(f.Items, it)
	return it
}

// Send writes the feedback JSON to w. An empty feedback is sent as an
// empty items array, never null, so Alfred doesn't fall back to its
// default searches on a syntax error.
func (f *Feedback) Send(w io.Writer) error {
	if f.Items == nil {
		f.Items = []*Item{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}
