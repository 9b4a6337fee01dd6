package directive

import (
	"regexp"
	"strings"
)

var (
	reStripSuggestion = regexp.MustCompile(`(?is)<suggestion[^>]*>.*?</suggestion>`)
	reStripMemory     = regexp.MustCompile(`(?is)<memory[^>]*>.*?</memory>`)
)

// Strip removes suggestion and memory blocks from a reply and collapses
// the resulting blank-line runs to at most one blank line. Edit and
// delete markup is left in place, it is handled out of band before
// anything reaches the user
func Strip(reply string) string {
	s := reStripSuggestion.ReplaceAllString(reply, "")
	s = reStripMemory.ReplaceAllString(s, "")

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blanks++
			if blanks > 1 {
				continue
			}
			out = append(out, "")
			continue
		}
		blanks = 0
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
