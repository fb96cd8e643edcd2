package signals

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// countWord counts non-overlapping whole-word occurrences of kw in text.
// Both must already be lower-cased. A match is whole when the runes on either
// side are absent or neither letter nor digit.
func countWord(text, kw string) int {
	if kw == "" {
		return 0
	}
	n := 0
	for i := 0; i <= len(text)-len(kw); {
		j := strings.Index(text[i:], kw)
		if j < 0 {
			break
		}
		start := i + j
		end := start + len(kw)
		if isBoundary(text, start, end) {
			n++
			i = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		i = start + size
	}
	return n
}

// firstWordOffset returns the byte offset of the first whole-word match of
// kw, or -1.
func firstWordOffset(text, kw string) int {
	if kw == "" {
		return -1
	}
	for i := 0; i <= len(text)-len(kw); {
		j := strings.Index(text[i:], kw)
		if j < 0 {
			return -1
		}
		start := i + j
		if isBoundary(text, start, start+len(kw)) {
			return start
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		i = start + size
	}
	return -1
}

func isBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func countAll(text string, keywords []string) int {
	total := 0
	for _, kw := range keywords {
		total += countWord(text, strings.ToLower(kw))
	}
	return total
}

func containsAny(text string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}

// roundHalfUp rounds .5 toward positive infinity.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// score rounds and clamps x to [0,100].
func score(x float64) int {
	v := roundHalfUp(x)
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
