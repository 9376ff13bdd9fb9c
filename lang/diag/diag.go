// Package diag collects and renders compiler diagnostics. It generalizes the
// single-message colored stderr logging of the original implementation into
// a structured, source-range-aware diagnostic with optional chained notes,
// in the style of go/scanner.ErrorList.
package diag

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mna/malinc/internal/source"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	// Error diagnostics prevent the file from compiling further than the
	// stage that raised them.
	Error Severity = iota
	// Warning diagnostics are informational and never stop compilation.
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Note is a secondary message attached to a Diagnostic, such as "previously
// declared here".
type Note struct {
	Range   source.Range
	Message string
}

// Diagnostic is a single compiler message anchored to a range of the source
// it was produced from, with zero or more chained notes.
type Diagnostic struct {
	Severity Severity
	Range    source.Range
	Message  string
	Notes    []Note
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Range.Start, d.Severity, d.Message)
}

// Bag accumulates diagnostics produced while processing a single file. It is
// constructed fresh for each compilation and passed explicitly to every
// stage that can fail, rather than kept in a package-level variable.
type Bag struct {
	Path        string
	Diagnostics []*Diagnostic
}

// NewBag returns an empty Bag for the file at path.
func NewBag(path string) *Bag {
	return &Bag{Path: path}
}

// Add appends a new error Diagnostic to the bag.
func (b *Bag) Add(rng source.Range, format string, args ...any) *Diagnostic {
	d := &Diagnostic{Severity: Error, Range: rng, Message: fmt.Sprintf(format, args...)}
	b.Diagnostics = append(b.Diagnostics, d)
	return d
}

// AddWarning appends a new warning Diagnostic to the bag.
func (b *Bag) AddWarning(rng source.Range, format string, args ...any) *Diagnostic {
	d := &Diagnostic{Severity: Warning, Range: rng, Message: fmt.Sprintf(format, args...)}
	b.Diagnostics = append(b.Diagnostics, d)
	return d
}

// Notef attaches a chained note to d and returns d for fluent chaining at
// the call site.
func (d *Diagnostic) Notef(rng source.Range, format string, args ...any) *Diagnostic {
	d.Notes = append(d.Notes, Note{Range: rng, Message: fmt.Sprintf(format, args...)})
	return d
}

// HasErrors reports whether b contains at least one Error-severity
// diagnostic.
func (b *Bag) HasErrors() bool {
	for _, d := range b.Diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Sort orders diagnostics by their starting position, matching the order
// they appear in the source file.
func (b *Bag) Sort() {
	sort.SliceStable(b.Diagnostics, func(i, j int) bool {
		bi, bj := b.Diagnostics[i].Range.Start, b.Diagnostics[j].Range.Start
		return bi.Byte < bj.Byte
	})
}

// Err returns nil if b has no diagnostics at Error severity, and otherwise
// an error aggregating all of them, compatible with errors.Is/As via
// Unwrap() []error.
func (b *Bag) Err() error {
	if !b.HasErrors() {
		return nil
	}
	return (*errList)(b)
}

type errList Bag

func (el *errList) Error() string {
	var sb strings.Builder
	for i, d := range el.Diagnostics {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(d.Error())
	}
	return sb.String()
}

func (el *errList) Unwrap() []error {
	errs := make([]error, len(el.Diagnostics))
	for i, d := range el.Diagnostics {
		errs[i] = d
	}
	return errs
}

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiRed   = "\x1b[31m"
	ansiCyan  = "\x1b[36m"
)

// Print writes every diagnostic in b to w, in source order, including a
// caret-underlined excerpt of the offending source line pulled from mgr.
// Color is used only if w is a terminal file descriptor.
func (b *Bag) Print(w io.Writer, mgr *source.Manager) {
	b.Sort()
	color := isTerminal(w)
	for _, d := range b.Diagnostics {
		printOne(w, mgr, d, color)
	}
}

func printOne(w io.Writer, mgr *source.Manager, d *Diagnostic, color bool) {
	label := d.Severity.String()
	if color {
		c := ansiRed
		if d.Severity == Warning {
			c = ansiCyan
		}
		fmt.Fprintf(w, "%s%s%s: %s%s%s %s\n", ansiBold, mgr.Path(), ansiReset, c, label, ansiReset, d.Message)
	} else {
		fmt.Fprintf(w, "%s: %s: %s\n", mgr.Path(), label, d.Message)
	}
	printExcerpt(w, mgr, d.Range, color)
	for _, n := range d.Notes {
		if color {
			fmt.Fprintf(w, "  %snote%s: %s\n", ansiCyan, ansiReset, n.Message)
		} else {
			fmt.Fprintf(w, "  note: %s\n", n.Message)
		}
		printExcerpt(w, mgr, n.Range, color)
	}
}

func printExcerpt(w io.Writer, mgr *source.Manager, rng source.Range, color bool) {
	if mgr == nil || rng.Start.Unknown() {
		return
	}
	line := mgr.Line(rng.Start.Line)
	fmt.Fprintf(w, "  %d | %s\n", rng.Start.Line, line)

	width := 1
	if rng.HasEnd() && rng.End.Line == rng.Start.Line && rng.End.Col > rng.Start.Col {
		width = rng.End.Col - rng.Start.Col
	}
	pad := strings.Repeat(" ", rng.Start.Col-1)
	caret := strings.Repeat("^", width)
	gutter := strings.Repeat(" ", len(fmt.Sprintf("%d", rng.Start.Line)))
	if color {
		fmt.Fprintf(w, "  %s | %s%s%s%s\n", gutter, pad, ansiBold, caret, ansiReset)
	} else {
		fmt.Fprintf(w, "  %s | %s%s\n", gutter, pad, caret)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
