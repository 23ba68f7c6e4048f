package associations

import (
	"iter"

	"github.com/mimepick/mimepick/internal/desktop"
	"github.com/mimepick/mimepick/internal/locator"
	"github.com/sirupsen/logrus"
)

// Options names the section and key that carry MIME declarations.
type Options struct {
	Section string
	MimeKey string
}

// DefaultOptions matches the Desktop Entry Specification.
func DefaultOptions() Options {
	return Options{Section: desktop.EntrySection, MimeKey: desktop.MimeTypeKey}
}

// Aggregate parses every entry and folds its declared MIME types into a new
// Map. Files that fail to parse, sections with the wrong name, and entry
// sections without a MIME key are logged as warnings and contribute nothing.
func Aggregate(entries iter.Seq[locator.Entry], opts Options, log logrus.FieldLogger) *Map {
	m := NewMap()
	for entry := range entries {
		fold(m, entry.Path, opts, log)
	}
	return m
}

func fold(m *Map, filename string, opts Options, log logrus.FieldLogger) {
	log.Debugf("Found desktop file %s", filename)

	f, err := desktop.Load(filename)
	if err != nil {
		log.Warnf("Failed to parse %s: %v", filename, err)
		return
	}

	for _, section := range f.Sections {
		if section.Unnamed {
			log.Warnf("Missing section in desktop file %s", filename)
			continue
		}
		if section.Name != opts.Section {
			log.Warnf("Unrecognized section %q in desktop file %s", section.Name, filename)
			continue
		}

		if v, ok := section.Value(desktop.VersionKey); ok {
			if err := desktop.CheckVersion(v); err != nil {
				log.Debugf("%s: %v", filename, err)
			}
		}

		mimes, ok := section.Value(opts.MimeKey)
		if !ok {
			log.Warnf("Missing %s in desktop file %s", opts.MimeKey, filename)
			continue
		}
		for _, mime := range desktop.SplitList(mimes) {
			log.Debugf("Associating %q with %s", mime, filename)
			m.Add(mime, filename)
		}
	}
}
