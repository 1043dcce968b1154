package transliteration

import "strings"

// Separate divides a lower-case romanized Ainu word into syllables of the
// shape V, CV or CVC, e.g. "eyaykosiramsuypa" → e-yay-ko-si-ram-suy-pa.
//
// Every vowel opens a syllable and takes the consonant right before it as
// its onset; any other letter closes the syllable in progress. Letters that
// precede the first onset form a syllable of their own. Apostrophes are
// dropped from the result.
func Separate(word string) []string {
	rs := []rune(word)
	if len(rs) == 0 {
		return nil
	}

	const unassigned = -1
	group := make([]int, len(rs))
	for i := range group {
		group[i] = unassigned
	}

	n := 0
	for i, r := range rs {
		if !isVowel(r) {
			continue
		}
		n++
		if i > 0 && isConsonant(rs[i-1]) {
			group[i-1] = n
		}
		group[i] = n
	}

	for i := range group {
		if group[i] != unassigned {
			continue
		}
		if i == 0 {
			group[i] = 0
		} else {
			group[i] = group[i-1]
		}
	}

	var syllables []string
	head := 0
	for i := 1; i <= len(rs); i++ {
		if i < len(rs) && group[i] == group[head] {
			continue
		}
		if s := stripApostrophes(string(rs[head:i])); s != "" {
			syllables = append(syllables, s)
		}
		head = i
	}

	return syllables
}

func stripApostrophes(s string) string {
	if !strings.ContainsAny(s, "'’") {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isApostrophe(r) {
			return -1
		}
		return r
	}, s)
}
