package generator

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// maxDiffLines bounds the inputs handed to the edit script search.
const maxDiffLines = 10000

// DiffOptions configures how diffs are generated and displayed.
// Zero values fall back to the defaults.
type DiffOptions struct {
	// ContextLines is the number of unchanged lines shown around changes.
	// Default: 3
	ContextLines int

	// TabWidth is the number of spaces a tab expands to.
	// Default: 4
	TabWidth int

	// Width truncates long lines. Default: terminal width, or 80.
	Width int
}

// GenerateDiff returns a unified diff from old to newer, or "" when they
// hold the same lines. A missing final newline is not reported.
func GenerateDiff(oldPath, newPath string, old, newer []byte, opts *DiffOptions) string {
	o := DiffOptions{ContextLines: 3, TabWidth: 4}
	if opts != nil {
		if opts.ContextLines > 0 {
			o.ContextLines = opts.ContextLines
		}
		if opts.TabWidth > 0 {
			o.TabWidth = opts.TabWidth
		}
		o.Width = opts.Width
	}
	if o.Width <= 0 {
		o.Width = terminalWidth()
	}

	if isBinary(old) || isBinary(newer) {
		return "Binary files differ\n"
	}

	a := splitLines(string(old))
	b := splitLines(string(newer))
	if equalLines(a, b) {
		return ""
	}

	if len(a) > maxDiffLines || len(b) > maxDiffLines {
		return fmt.Sprintf("Files too large for diff (%d and %d lines)\n", len(a), len(b))
	}

	hunks := buildHunks(editScript(a, b), o.ContextLines)
	if len(hunks) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString(headerStyle.Render("--- "+oldPath) + "\n")
	buf.WriteString(headerStyle.Render("+++ "+newPath) + "\n")
	for _, h := range hunks {
		buf.WriteString(formatHunk(h, o))
	}
	return buf.String()
}

type lineOp int

const (
	opEqual lineOp = iota
	opInsert
	opDelete
)

type diffLine struct {
	op      lineOp
	oldNum  int // 1-based, 0 for inserts
	newNum  int // 1-based, 0 for deletes
	content string
}

type hunk struct {
	oldStart, oldCount int
	newStart, newCount int
	lines              []diffLine
}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hunkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	insertStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("22"))
	deleteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("52"))
)

// editScript computes the shortest edit script from a to b with Myers'
// O(ND) greedy search, then walks the recorded frontiers backwards.
func editScript(a, b []string) []diffLine {
	n, m := len(a), len(b)
	limit := n + m
	if limit == 0 {
		return nil
	}

	off := limit
	v := make([]int, 2*limit+2)
	var trace [][]int

search:
	for d := 0; d <= limit; d++ {
		trace = append(trace, append([]int(nil), v...))
		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[off+k-1] < v[off+k+1]) {
				x = v[off+k+1]
			} else {
				x = v[off+k-1] + 1
			}
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[off+k] = x
			if x >= n && y >= m {
				break search
			}
		}
	}

	var script []diffLine
	x, y := n, m
	for d := len(trace) - 1; d >= 0; d-- {
		fv := trace[d]
		k := x - y

		prevK := k - 1
		if k == -d || (k != d && fv[off+k-1] < fv[off+k+1]) {
			prevK = k + 1
		}
		prevX := fv[off+prevK]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			script = append(script, diffLine{op: opEqual, oldNum: x + 1, newNum: y + 1, content: a[x]})
		}

		if d == 0 {
			break
		}
		if x == prevX {
			y--
			script = append(script, diffLine{op: opInsert, newNum: y + 1, content: b[y]})
		} else {
			x--
			script = append(script, diffLine{op: opDelete, oldNum: x + 1, content: a[x]})
		}
	}

	for i, j := 0, len(script)-1; i < j; i, j = i+1, j-1 {
		script[i], script[j] = script[j], script[i]
	}
	return script
}

// buildHunks groups changes that are at most 2*context lines apart and
// pads each group with context lines.
func buildHunks(script []diffLine, context int) []hunk {
	var changes []int
	for i, l := range script {
		if l.op != opEqual {
			changes = append(changes, i)
		}
	}
	if len(changes) == 0 {
		return nil
	}

	var hunks []hunk
	start := changes[0]
	end := changes[0]
	flush := func() {
		lo := max(start-context, 0)
		hi := min(end+context, len(script)-1)
		hunks = append(hunks, newHunk(script, lo, hi))
	}
	for _, c := range changes[1:] {
		if c-end > 2*context+1 {
			flush()
			start = c
		}
		end = c
	}
	flush()

	return hunks
}

func newHunk(script []diffLine, lo, hi int) hunk {
	h := hunk{lines: script[lo : hi+1]}

	// Line numbers of the first line on each side, counting lines that
	// precede the hunk when it opens with an insert or a delete.
	oldBefore, newBefore := 0, 0
	for _, l := range script[:lo] {
		if l.op != opInsert {
			oldBefore++
		}
		if l.op != opDelete {
			newBefore++
		}
	}

	for _, l := range h.lines {
		if l.op != opInsert {
			h.oldCount++
		}
		if l.op != opDelete {
			h.newCount++
		}
	}

	h.oldStart = oldBefore
	if h.oldCount > 0 {
		h.oldStart++
	}
	h.newStart = newBefore
	if h.newCount > 0 {
		h.newStart++
	}
	return h
}

func formatHunk(h hunk, opts DiffOptions) string {
	var buf strings.Builder

	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.oldStart, h.oldCount, h.newStart, h.newCount)
	buf.WriteString(hunkStyle.Render(header) + "\n")

	for _, l := range h.lines {
		content := truncateLine(expandTabs(l.content, opts.TabWidth), opts.Width-2)
		switch l.op {
		case opInsert:
			buf.WriteString(insertStyle.Render("+"+content) + "\n")
		case opDelete:
			buf.WriteString(deleteStyle.Render("-"+content) + "\n")
		default:
			buf.WriteString(" " + content + "\n")
		}
	}

	return buf.String()
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// isBinary reports whether the first 8 KiB contain a NUL byte.
func isBinary(data []byte) bool {
	return bytes.IndexByte(data[:min(len(data), 8192)], 0) != -1
}

// splitLines splits content into lines; a final newline does not start
// another line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func expandTabs(s string, tabWidth int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}

	var buf strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			spaces := tabWidth - col%tabWidth
			buf.WriteString(strings.Repeat(" ", spaces))
			col += spaces
			continue
		}
		buf.WriteRune(r)
		col++
	}
	return buf.String()
}

// truncateLine shortens s to maxWidth runes, ending in "...".
func truncateLine(s string, maxWidth int) string {
	if maxWidth <= 3 {
		maxWidth = 80
	}
	if utf8.RuneCountInString(s) <= maxWidth {
		return s
	}
	return string([]rune(s)[:maxWidth-3]) + "..."
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
