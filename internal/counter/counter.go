// Package counter measures how much Japanese text a chapter contains.
package counter

import (
	"regexp"
	"unicode/utf8"
)

// The classes are kept exactly as published so totals recorded by earlier
// versions stay comparable.
var reJapanese = regexp.MustCompile(`[一-龠]+|[ぁ-ゔ]+|[ァ-ヴー]+|[ａ-ｚＡ-Ｚ０-９]+|[々〆〤ヶ]+`)

// Count returns the number of code points covered by Japanese-script runs in
// text. Everything between runs is ignored.
func Count(text string) int {
	n := 0
	for _, run := range reJapanese.FindAllString(text, -1) {
		n += utf8.RuneCountInString(run)
	}

	return n
}
