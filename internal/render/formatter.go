package render

import (
	"regexp"
	"strings"
)

var (
	boldPattern       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	headingPattern    = regexp.MustCompile(`^(#{1,3}) (.+)$`)
	bulletPattern     = regexp.MustCompile(`^\* (.+)$`)
	numberedPattern   = regexp.MustCompile(`^(\d+)\. (.+)$`)
	blockTagPattern   = regexp.MustCompile(`^<(p|h[1-3])>`)
	blockBreakPattern = regexp.MustCompile(`\n[ \t]*\n`)
)

// FormatText turns the small markdown subset produced by language models
// (bold, #-headings, "* " bullets, "N. " numbered items) into HTML.
// Unsupported syntax passes through literally. The result is stable under
// a second pass.
//
// FormatText does not escape its input; callers handling untrusted text
// sanitise the result.
func FormatText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var blocks []string
	for _, raw := range blockBreakPattern.Split(text, -1) {
		if block := formatBlock(raw); block != "" {
			blocks = append(blocks, block)
		}
	}

	if len(blocks) > 1 {
		for i, block := range blocks {
			if !blockTagPattern.MatchString(block) {
				blocks[i] = "<p>" + block + "</p>"
			}
		}
	}
	return strings.Join(blocks, "\n\n")
}

func formatBlock(block string) string {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, formatLine(line))
	}
	return strings.Join(lines, " ")
}

func formatLine(line string) string {
	line = boldPattern.ReplaceAllString(line, "<strong>$1</strong>")

	if m := headingPattern.FindStringSubmatch(line); m != nil {
		level := len(m[1])
		tag := "h" + string(rune('0'+level))
		return "<" + tag + ">" + m[2] + "</" + tag + ">"
	}
	if m := bulletPattern.FindStringSubmatch(line); m != nil {
		return "<p>• " + m[1] + "</p>"
	}
	if m := numberedPattern.FindStringSubmatch(line); m != nil {
		return "<p>" + m[1] + ". " + m[2] + "</p>"
	}
	return line
}
