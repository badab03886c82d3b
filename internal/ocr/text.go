package ocr

import (
	"strings"
	"unicode"
)

// NormalizeText trims a recognized line and removes whitespace that sits
// next to a CJK character. Runs of other whitespace collapse to one space.
func NormalizeText(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(fields[0])
	for i := 1; i < len(fields); i++ {
		prev := lastRune(fields[i-1])
		next := firstRune(fields[i])
		if !isCJK(prev) && !isCJK(next) {
			b.WriteByte(' ')
		}
		b.WriteString(fields[i])
	}
	return b.String()
}

func isCJK(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) ||
		unicode.Is(cjkPunct, r)
}

// cjkPunct covers CJK symbols and punctuation plus fullwidth forms.
var cjkPunct = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x3000, Hi: 0x303F, Stride: 1},
		{Lo: 0xFF00, Hi: 0xFFEF, Stride: 1},
	},
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func lastRune(s string) rune {
	r := []rune(s)
	if len(r) == 0 {
		return 0
	}
	return r[len(r)-1]
}
