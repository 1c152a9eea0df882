package render

import "strings"

// Reflow splits text into chunks of at most width characters.
//
// Every line of text (split on "\n") starts a new chunk and every line,
// including an empty one, yields at least one chunk. All chunks of a line
// except the last have exactly width characters. Splitting is positional;
// whitespace gets no special treatment.
//
// Reflow panics if width is not positive.
func Reflow(text string, width int) []string {
	if width <= 0 {
		panic("render: Reflow width must be positive")
	}

	var chunks []string
	for _, line := range strings.Split(text, "\n") {
		runes := []rune(line)
		if len(runes) == 0 {
			chunks = append(chunks, "")
			continue
		}
		for start := 0; start < len(runes); start += width {
			end := min(start+width, len(runes))
			chunks = append(chunks, string(runes[start:end]))
		}
	}
	return chunks
}
