package theme

import "sync"

// Document is the Applier the server uses: it mirrors what a browser would
// do to the <html> element's class list. The page handler reads the class
// string when rendering, and the JSON API exposes it so the frontend can
// swap classes without a reload.
type Document struct {
	mu    sync.RWMutex
	class string
}

// NewDocument returns a Document with no marker applied yet. The theme
// service applies one during construction, so the empty state is never
// observable through normal wiring.
func NewDocument() *Document {
	return &Document{}
}

// Apply replaces the current marker class with t's. Replacement (not
// addition) is what keeps the two markers mutually exclusive.
func (d *Document) Apply(t Theme) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.class = t.MarkerClass()
}

// Class returns the currently applied marker class.
func (d *Document) Class() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.class
}
