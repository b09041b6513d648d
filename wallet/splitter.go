package wallet

import "strings"

// Split returns the human-facing part of an agent response. When block is
// non-nil the block and the blank line that follows it are cut out; the block
// contents are not re-validated. The result is always trimmed, so splitting
// text without a block only ever changes its surrounding whitespace.
func Split(text string, block *Block) string {
	if block == nil {
		return strings.TrimSpace(text)
	}

	start, end := block.Start, block.End+block.Separator
	if start < 0 || start > end || end > len(text) {
		return strings.TrimSpace(text)
	}

	return strings.TrimSpace(text[:start] + text[end:])
}
