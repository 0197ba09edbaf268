// Package store defines the path-addressed graph store capability the
// client consumes: dot-joined paths, a Get/Put/Map interface, and the
// escaping rules that keep user-controlled segments from injecting
// separators.
package store

import "strings"

// Separator joins path segments in the store's addressing syntax.
const Separator = "."

// Path is a fully formed address inside the graph store.
type Path string

func (p Path) String() string { return string(p) }

// Escape encodes separator and escape characters inside a single segment
// so that user-controlled values (aliases, search terms, post ids) cannot
// extend or redirect a path.
func Escape(segment string) string {
	segment = strings.ReplaceAll(segment, "%", "%25")
	return strings.ReplaceAll(segment, Separator, "%2E")
}

// Unescape reverses Escape.
func Unescape(segment string) string {
	segment = strings.ReplaceAll(segment, "%2E", Separator)
	return strings.ReplaceAll(segment, "%25", "%")
}

// Join builds a path from a table name and a sequence of segments.
// Segments are escaped individually; the table name is trusted and used
// verbatim. Join is pure: identical inputs always yield identical paths.
func Join(table string, segments ...string) Path {
	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, table)
	for _, s := range segments {
		parts = append(parts, Escape(s))
	}
	return Path(strings.Join(parts, Separator))
}

// Child appends escaped segments below p.
func (p Path) Child(segments ...string) Path {
	out := p
	for _, s := range segments {
		out = Path(string(out) + Separator + Escape(s))
	}
	return out
}

// JoinPath appends an already formed sub-path below p without escaping.
// Callers must only pass paths built by this package.
func (p Path) JoinPath(sub Path) Path {
	if sub == "" {
		return p
	}
	return Path(string(p) + Separator + string(sub))
}
