package marker

import (
	"math"
	"strconv"
	"strings"
)

var cardinals = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
}

var tens = map[string]int{
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

var ordinals = map[string]int{
	"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5,
	"sixth": 6, "seventh": 7, "eighth": 8, "ninth": 9, "tenth": 10,
	"eleventh": 11, "twelfth": 12, "thirteenth": 13, "fourteenth": 14,
	"fifteenth": 15, "sixteenth": 16, "seventeenth": 17, "eighteenth": 18,
	"nineteenth": 19, "twentieth": 20,
}

// parseNumberPhrase reads a spoken or written number starting at words[i].
// It accepts digit tokens ("7", "6.5"), cardinals up to ninety-nine
// ("twenty one"), ordinals ("third"), and decimal phrases where the fraction
// is spoken digit by digit ("six point two five" -> 6.25). Returns the value,
// the count of words consumed, and whether a number was found.
func parseNumberPhrase(words []string, i int) (float64, int, bool) {
	whole, n, ok := parseWhole(words, i)
	if !ok {
		return 0, 0, false
	}

	// Optional decimal tail, only when the whole part itself is integral.
	j := i + n
	if whole == math.Trunc(whole) && j < len(words) && words[j] == "point" {
		frac := 0.0
		scale := 0.1
		k := j + 1
		for k < len(words) {
			d, ok := parseFractionDigit(words[k])
			if !ok {
				break
			}
			frac += float64(d) * scale
			scale /= 10
			k++
		}
		if k > j+1 {
			return whole + frac, k - i, true
		}
	}

	return whole, n, true
}

// parseIntPhrase is parseNumberPhrase restricted to non-negative integers
// (take, step, and order counts are never fractional).
func parseIntPhrase(words []string, i int) (int, int, bool) {
	v, n, ok := parseNumberPhrase(words, i)
	if !ok || v < 0 || v != math.Trunc(v) {
		return 0, 0, false
	}
	return int(v), n, true
}

func parseWhole(words []string, i int) (float64, int, bool) {
	if i >= len(words) {
		return 0, 0, false
	}
	w := words[i]

	// Digit tokens may already carry a fraction ("6.5").
	if f, err := strconv.ParseFloat(w, 64); err == nil && f >= 0 {
		return f, 1, true
	}

	// "twenty-one" arrives as one token from some ASR engines.
	if head, tail, found := strings.Cut(w, "-"); found {
		if t, ok := tens[head]; ok {
			if u, ok := cardinals[tail]; ok && u < 10 {
				return float64(t + u), 1, true
			}
		}
	}

	if v, ok := cardinals[w]; ok {
		return float64(v), 1, true
	}
	if v, ok := ordinals[w]; ok {
		return float64(v), 1, true
	}
	if t, ok := tens[w]; ok {
		if i+1 < len(words) {
			if u, ok := cardinals[words[i+1]]; ok && u > 0 && u < 10 {
				return float64(t + u), 2, true
			}
		}
		return float64(t), 1, true
	}
	return 0, 0, false
}

func parseFractionDigit(w string) (int, bool) {
	if v, ok := cardinals[w]; ok && v < 10 {
		return v, true
	}
	if len(w) == 1 && w[0] >= '0' && w[0] <= '9' {
		return int(w[0] - '0'), true
	}
	return 0, false
}
