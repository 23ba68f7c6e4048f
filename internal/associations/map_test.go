package associations

import (
	"reflect"
	"testing"
)

func TestMapAddPreservesOrderAndDuplicates(t *testing.T) {
	m := NewMap()
	m.Add("text/plain", "a.desktop")
	m.Add("image/png", "b.desktop")
	m.Add("text/plain", "c.desktop")
	m.Add("text/plain", "a.desktop")

	if m.Len() != 2 {
		t.Errorf("Len = %d, want 2", m.Len())
	}
	if m.Total() != 4 {
		t.Errorf("Total = %d, want 4", m.Total())
	}

	want := []string{"a.desktop", "c.desktop", "a.desktop"}
	if got := m.Handlers("text/plain"); !reflect.DeepEqual(got, want) {
		t.Errorf("Handlers(text/plain) = %v, want %v", got, want)
	}

	var keys []string
	for mime := range m.All() {
		keys = append(keys, mime)
	}
	if !reflect.DeepEqual(keys, []string{"text/plain", "image/png"}) {
		t.Errorf("key order = %v, want first-seen order", keys)
	}
}

func TestMapNoEmptyEntries(t *testing.T) {
	m := NewMap()
	if got := m.Handlers("text/plain"); got != nil {
		t.Errorf("Handlers on empty map = %v, want nil", got)
	}
	for mime, handlers := range m.All() {
		t.Errorf("unexpected entry %q: %v", mime, handlers)
	}
}

func TestMapFilter(t *testing.T) {
	m := NewMap()
	m.Add("text/plain", "a.desktop")
	m.Add("image/png", "b.desktop")
	m.Add("text/html", "c.desktop")
	m.Add("text/html", "d.desktop")

	filtered, err := m.Filter([]string{"text/*"})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if filtered.Len() != 2 {
		t.Errorf("Len = %d, want 2", filtered.Len())
	}
	if got := filtered.Handlers("text/html"); !reflect.DeepEqual(got, []string{"c.desktop", "d.desktop"}) {
		t.Errorf("Handlers(text/html) = %v", got)
	}
	if filtered.Handlers("image/png") != nil {
		t.Error("image/png should be filtered out")
	}

	same, err := m.Filter(nil)
	if err != nil || same != m {
		t.Errorf("Filter(nil) should return the receiver, got %p err=%v", same, err)
	}

	if _, err := m.Filter([]string{"text/["}); err == nil {
		t.Error("expected error for malformed pattern")
	}
}
