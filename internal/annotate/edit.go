package annotate

import (
	"sort"
	"strings"
)

// Edit is a single text insertion into the original source.
type Edit struct {
	At   int // byte offset in the original source
	Text string
}

// Apply splices edits into src. Edits are ordered by offset; edits sharing
// an offset keep the order in which they were recorded, which is what makes
// wrapping and annotating the same position compose correctly.
func Apply(src string, edits []Edit) string {
	if len(edits) == 0 {
		return src
	}
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })

	grow := 0
	for _, e := range sorted {
		grow += len(e.Text)
	}
	var out strings.Builder
	out.Grow(len(src) + grow)

	prev := 0
	for _, e := range sorted {
		at := e.At
		if at < prev {
			at = prev
		}
		if at > len(src) {
			at = len(src)
		}
		out.WriteString(src[prev:at])
		out.WriteString(e.Text)
		prev = at
	}
	out.WriteString(src[prev:])
	return out.String()
}
