package textutil

import "strings"

// Paragraphs tidies extracted or pasted text: line endings become \n, each
// line has its runs of space collapsed to one blank, and at most one empty
// line separates paragraphs. Word counts are unchanged.
func Paragraphs(text string) string {
	text = strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(text)

	var b strings.Builder
	b.Grow(len(text))

	blank := false
	for _, line := range strings.Split(text, "\n") {
		words := strings.FieldsFunc(line, IsSpace)
		if len(words) == 0 {
			if b.Len() > 0 && !blank {
				b.WriteByte('\n')
				blank = true
			}
			continue
		}
		blank = false
		b.WriteString(strings.Join(words, " "))
		b.WriteByte('\n')
	}

	return strings.TrimRight(b.String(), "\n")
}
