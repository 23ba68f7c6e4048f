package desktop

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/ini.v1"
)

// Well-known names from the Desktop Entry Specification.
const (
	EntrySection = "Desktop Entry"
	MimeTypeKey  = "MimeType"
	VersionKey   = "Version"
	ListSep      = ";"
)

// SupportedVersion is the newest Desktop Entry Specification version this
// tool knows about.
var SupportedVersion = semver.MustParse("1.5")

// loadOptions keep every group, including repeated ones, in file order.
// Values arrive pre-quoted by verbatimValues.
var loadOptions = ini.LoadOptions{
	AllowNonUniqueSections: true,
	KeyValueDelimiters:     "=",
}

// verbatimValues wraps every value in backticks. ini.v1 strips exactly one
// pair of surrounding backticks and applies no other interpretation, so
// values that start with a quote, end in a backslash, or contain ';' or
// '#' come through unchanged. Desktop files have no quoting of their own.
func verbatimValues(src []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(src) + len(src)/8)
	for line := range bytes.Lines(src) {
		trimmed := bytes.TrimSpace(line)
		eq := bytes.IndexByte(trimmed, '=')
		if len(trimmed) == 0 || trimmed[0] == '#' || trimmed[0] == '[' || eq < 0 {
			out.Write(trimmed)
			out.WriteByte('\n')
			continue
		}
		out.Write(trimmed[:eq])
		out.WriteString("=`")
		out.Write(bytes.TrimSpace(trimmed[eq+1:]))
		out.WriteString("`\n")
	}
	return out.Bytes()
}

// Section is one section of a parsed file.
type Section struct {
	// Name is empty for keys that appear before any section header.
	Name    string
	Unnamed bool
	sec     *ini.Section
}

// Value returns the raw value of key and whether it was present.
func (s Section) Value(key string) (string, bool) {
	if !s.sec.HasKey(key) {
		return "", false
	}
	return s.sec.Key(key).Value(), true
}

// File is a parsed desktop-entry file.
type File struct {
	Path     string
	Sections []Section
}

// Load parses the file at path. The unnamed scope is reported as a section
// only when it actually holds keys.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ini.LoadSources(loadOptions, verbatimValues(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	f := &File{Path: path}
	for _, sec := range cfg.Sections() {
		if sec.Name() == ini.DefaultSection {
			if len(sec.Keys()) == 0 {
				continue
			}
			f.Sections = append(f.Sections, Section{Unnamed: true, sec: sec})
			continue
		}
		f.Sections = append(f.Sections, Section{Name: sec.Name(), sec: sec})
	}
	return f, nil
}

// SplitList splits a semicolon-separated list value, dropping empty
// segments so a trailing separator never yields an empty item.
func SplitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ListSep) {
		if item == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

// CheckVersion reports whether a Version value is one this tool understands.
func CheckVersion(value string) error {
	v, err := semver.NewVersion(value)
	if err != nil {
		return fmt.Errorf("unrecognized desktop entry version %q: %w", value, err)
	}
	if v.GreaterThan(SupportedVersion) {
		return fmt.Errorf("desktop entry version %s is newer than supported %s", v, SupportedVersion)
	}
	return nil
}
