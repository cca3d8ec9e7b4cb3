package cleanse

import (
	"strings"

	"stylint/internal/diag"
)

// Suppression markers are comments, so they must be read from raw text:
// cleansing blanks them before anything downstream runs. This is the one
// place where a comment carries a semantic signal.
const (
	markerSameLine = "NOLINT"
	markerNextLine = "NOLINTNEXTLINE"
)

// marker is the suppression state attached to one physical line.
type marker struct {
	all  bool
	cats []diag.Category
}

func (m marker) covers(cat diag.Category) bool {
	if m.all {
		return true
	}
	for _, c := range m.cats {
		if cat.HasPrefix(c) {
			return true
		}
	}
	return false
}

func (m *marker) merge(other marker) {
	if other.all {
		m.all = true
		return
	}
	m.cats = append(m.cats, other.cats...)
}

// scanMarkers finds NOLINT and NOLINTNEXTLINE comments in raw lines and
// returns the per-line suppression map. A NOLINTNEXTLINE on line K is
// recorded against line K+1 and nothing else.
func scanMarkers(path string, rawLines []string) map[uint32]marker {
	_ = path
	out := make(map[uint32]marker)

	for i, raw := range rawLines {
		num := uint32(i + 1) // #nosec G115 -- line counts fit uint32

		idx := strings.Index(raw, "//")
		if idx < 0 {
			// Block-comment markers also count: /* NOLINT */ is accepted.
			idx = strings.Index(raw, "/*")
			if idx < 0 {
				continue
			}
		}
		comment := raw[idx:]

		// NOLINTNEXTLINE first: NOLINT is its prefix.
		if pos := strings.Index(comment, markerNextLine); pos >= 0 {
			m := parseMarkerCategories(comment[pos+len(markerNextLine):])
			addMarker(out, num+1, m)
			continue
		}
		if pos := strings.Index(comment, markerSameLine); pos >= 0 {
			m := parseMarkerCategories(comment[pos+len(markerSameLine):])
			addMarker(out, num, m)
		}
	}
	return out
}

// parseMarkerCategories reads an optional (cat1,cat2) list right after the
// marker token. A bare marker, or one with an empty or unparsable list,
// suppresses everything on the target line.
func parseMarkerCategories(rest string) marker {
	if !strings.HasPrefix(rest, "(") {
		return marker{all: true}
	}
	end := strings.IndexByte(rest, ')')
	if end < 0 {
		return marker{all: true}
	}
	inner := rest[1:end]
	if strings.TrimSpace(inner) == "" || strings.TrimSpace(inner) == "*" {
		return marker{all: true}
	}

	var cats []diag.Category
	for _, part := range strings.Split(inner, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			cats = append(cats, diag.Category(part))
		}
	}
	if len(cats) == 0 {
		return marker{all: true}
	}
	return marker{cats: cats}
}

func addMarker(out map[uint32]marker, line uint32, m marker) {
	cur := out[line]
	cur.merge(m)
	out[line] = cur
}

// Suppressed reports whether a diagnostic of the given category at the
// given line is disabled by an in-source marker. Line-0 (whole file)
// findings are never marker-suppressed.
func (f *File) Suppressed(line uint32, cat diag.Category) bool {
	m, ok := f.markers[line]
	if !ok {
		return false
	}
	return m.covers(cat)
}
