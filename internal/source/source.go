// Package source owns the text of the file currently being compiled and
// translates byte offsets into human-readable line:column positions.
package source

import (
	"fmt"
	"os"
	"strings"
)

// Pos is a 1-indexed line/column position together with the byte offset it
// was computed from. The zero value means "unknown": Line 0 is never a
// real line.
type Pos struct {
	Line int
	Col  int
	Byte int
}

// Unknown reports whether p carries no usable position information.
func (p Pos) Unknown() bool { return p.Line == 0 }

func (p Pos) String() string {
	if p.Unknown() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Range is a start position plus an optional end. An End with Line == 0
// means the range is a single point at Start.
type Range struct {
	Start Pos
	End   Pos
}

// HasEnd reports whether r carries a distinct end position.
func (r Range) HasEnd() bool { return !r.End.Unknown() }

// Point returns a Range that starts and ends at p.
func Point(p Pos) Range { return Range{Start: p} }

// Manager holds the text and path of the file currently being compiled. One
// Manager is constructed per compiled file and threaded explicitly through
// the pipeline -- never stashed in a package-level variable -- so that
// concurrent or repeated compilations never contaminate each other.
type Manager struct {
	path  string
	text  string
	lines []int // byte offset of the start of each line, 0-indexed by line-1
}

// NewManager reads path and indexes its line starts.
func NewManager(path string) (*Manager, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewManagerFromSource(path, string(b)), nil
}

// NewManagerFromSource builds a Manager directly from in-memory text, used
// by tests and by callers that already have the source (e.g. stdin).
func NewManagerFromSource(path, text string) *Manager {
	m := &Manager{path: path, text: text, lines: []int{0}}
	for i, r := range text {
		if r == '\n' {
			m.lines = append(m.lines, i+1)
		}
	}
	return m
}

// Path returns the file path this Manager was built from.
func (m *Manager) Path() string { return m.path }

// Text returns the full source text.
func (m *Manager) Text() string { return m.text }

// PosAt builds a Pos for byte offset off, computing line and column by a
// binary search over the indexed line starts.
func (m *Manager) PosAt(off int) Pos {
	lo, hi := 0, len(m.lines)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if m.lines[mid] <= off {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	line := lo
	col := off - m.lines[line]
	return Pos{Line: line + 1, Col: col + 1, Byte: off}
}

// Line returns the text of the 1-indexed line, without its trailing newline.
func (m *Manager) Line(n int) string {
	if n < 1 || n > len(m.lines) {
		return ""
	}
	start := m.lines[n-1]
	end := len(m.text)
	if n < len(m.lines) {
		end = m.lines[n] - 1
	}
	line := m.text[start:end]
	return strings.TrimSuffix(line, "\r")
}

// LineCount returns the number of lines indexed.
func (m *Manager) LineCount() int { return len(m.lines) }
