package format

import "strings"

const (
	mdV1Specials = "_*`["
	mdV2Specials = "_*[]()~`>#+-=|{}.!"
)

// Escape neutralizes Markdown (V1) control characters in user-supplied text
// so interpolated values cannot break message formatting.
func Escape(text string) string {
	return escape(text, mdV1Specials)
}

// EscapeV2 neutralizes MarkdownV2 control characters.
func EscapeV2(text string) string {
	return escape(text, mdV2Specials)
}

func escape(text, specials string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < 0x80 && strings.ContainsRune(specials, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
