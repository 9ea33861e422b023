// Package speech normalizes spoken Hindi/Hinglish phrases before they reach
// the voice parser, so "do kilo cement barah sau rupaye" arrives as
// "2 kilo cement 1200".
package speech

import (
	"strconv"
	"strings"
)

var spokenNumbers = map[string]int{
	"ek":     1,
	"do":     2,
	"teen":   3,
	"char":   4,
	"chaar":  4,
	"paanch": 5,
	"panch":  5,
	"chhe":   6,
	"saat":   7,
	"aath":   8,
	"nau":    9,
	"das":    10,
	"gyarah": 11,
	"barah":  12,
}

var spokenMultipliers = map[string]int{
	"sau":    100,
	"hazaar": 1000,
}

var fillerWords = map[string]bool{
	"rupaye": true,
	"rupees": true,
	"rs":     true,
	"rate":   true,
	"ka":     true,
	"ke":     true,
	"mein":   true,
}

// NormalizeNumbers lower-cases the text, converts spoken number words to
// digits (including "barah sau" style multiplier pairs) and drops filler
// words around prices.
func NormalizeNumbers(text string) string {
	words := strings.Fields(strings.ToLower(text))
	result := make([]string, 0, len(words))

	for i := 0; i < len(words); i++ {
		w := words[i]

		if n, ok := spokenNumbers[w]; ok {
			// barah sau -> 1200
			if i+1 < len(words) {
				if mult, ok := spokenMultipliers[words[i+1]]; ok {
					result = append(result, strconv.Itoa(n*mult))
					i++
					continue
				}
			}
			result = append(result, strconv.Itoa(n))
			continue
		}

		if fillerWords[w] {
			continue
		}

		result = append(result, w)
	}

	return strings.Join(result, " ")
}
