package menu

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DayBlock is the ordered, trimmed content lines attributed to one day.
type DayBlock []string

// Text joins the block into a multi-line meal description.
func (b DayBlock) Text() string {
	return strings.Join(b, "\n")
}

// SplitBlocks regroups the lines of a multi-day table section into one
// block per day column.
//
// Junk lines are dropped. A line opens a new block when its raw form has
// leading whitespace, a block already exists and fewer than expected
// blocks have been opened; otherwise it extends the last block. Only the
// presence of indentation counts, not its depth. Column offsets are not
// available in the extracted text.
func (c Classifier) SplitBlocks(lines []string, expected int) []DayBlock {
	var blocks []DayBlock
	for _, raw := range lines {
		if c.IsJunk(raw) {
			continue
		}
		if len(blocks) == 0 || (hasLeadingSpace(raw) && len(blocks) < expected) {
			blocks = append(blocks, nil)
		}
		last := len(blocks) - 1
		blocks[last] = append(blocks[last], strings.TrimSpace(raw))
	}
	return blocks
}

// FirstLinePerDay assigns the first non-junk line to day 0, the next to
// day 1 and so on, one line per day, for at most days days.
func (c Classifier) FirstLinePerDay(lines []string, days int) []string {
	assigned := make([]string, 0, days)
	for _, raw := range lines {
		if len(assigned) == days {
			break
		}
		if c.IsJunk(raw) {
			continue
		}
		assigned = append(assigned, strings.TrimSpace(raw))
	}
	return assigned
}

func hasLeadingSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && unicode.IsSpace(r)
}
