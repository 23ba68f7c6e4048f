package associations

import (
	"iter"
	"path"
)

// Map is a MIME type → handler list mapping. Handlers keep discovery order
// and may repeat. Keys iterate in first-seen order. An entry exists only
// once a handler has been added to it, so no list is ever empty.
type Map struct {
	order    []string
	handlers map[string][]string
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{handlers: make(map[string][]string)}
}

// Add appends handler to mime's list, creating the entry on first use.
func (m *Map) Add(mime, handler string) {
	if _, ok := m.handlers[mime]; !ok {
		m.order = append(m.order, mime)
	}
	m.handlers[mime] = append(m.handlers[mime], handler)
}

// Handlers returns the candidates for mime. The slice must not be modified.
func (m *Map) Handlers(mime string) []string {
	return m.handlers[mime]
}

// All iterates entries in first-seen order.
func (m *Map) All() iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		for _, mime := range m.order {
			if !yield(mime, m.handlers[mime]) {
				return
			}
		}
	}
}

// Len returns the number of MIME types.
func (m *Map) Len() int {
	return len(m.order)
}

// Total returns the number of (MIME type, handler) pairs.
func (m *Map) Total() int {
	n := 0
	for _, h := range m.handlers {
		n += len(h)
	}
	return n
}

// Filter returns a map holding only the MIME types that match at least one
// of the glob patterns (path.Match syntax, e.g. "text/*"). No patterns
// returns m itself.
func (m *Map) Filter(patterns []string) (*Map, error) {
	if len(patterns) == 0 {
		return m, nil
	}
	for _, p := range patterns {
		if _, err := path.Match(p, ""); err != nil {
			return nil, err
		}
	}

	out := NewMap()
	for mime, handlers := range m.All() {
		for _, p := range patterns {
			if ok, _ := path.Match(p, mime); ok {
				for _, h := range handlers {
					out.Add(mime, h)
				}
				break
			}
		}
	}
	return out, nil
}
