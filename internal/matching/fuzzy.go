package matching

import (
	"regexp"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

var (
	nonAlnum = regexp.MustCompile(`[^\p{L}\p{N}]+`)

	featBracketed = regexp.MustCompile(`(?i)\s*[\(\[]\s*(?:feat|ft|featuring)\.?\s[^\)\]]*[\)\]]`)
	featTrailing  = regexp.MustCompile(`(?i)\s+(?:feat|ft|featuring)\.?\s.*$`)
)

// Normalize lowercases s and collapses every run of non-alphanumeric characters to one space.
func Normalize(s string) string {
	return strings.Join(strings.Fields(nonAlnum.ReplaceAllString(strings.ToLower(s), " ")), " ")
}

// StripFeaturing removes "feat." / "ft." / "featuring" credits, bracketed or trailing.
func StripFeaturing(s string) string {
	s = featBracketed.ReplaceAllString(s, "")
	s = featTrailing.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Ratio is the normalized edit-distance similarity of a and b, 0-100.
func Ratio(a, b string) float64 {
	return ratio(Normalize(a), Normalize(b))
}

// PartialRatio is the best [Ratio] of the shorter string against every equal-length window of the longer.
func PartialRatio(a, b string) float64 {
	return partialRatio(Normalize(a), Normalize(b))
}

// TokenSetRatio compares the word sets of a and b, ignoring order and repetition.
// A string whose words are all contained in the other scores 100.
func TokenSetRatio(a, b string) float64 {
	ta, tb := tokenSet(Normalize(a)), tokenSet(Normalize(b))
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var common, onlyA, onlyB []string
	for _, tok := range ta {
		if _, ok := slices.BinarySearch(tb, tok); ok {
			common = append(common, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for _, tok := range tb {
		if _, ok := slices.BinarySearch(ta, tok); !ok {
			onlyB = append(onlyB, tok)
		}
	}

	if len(common) > 0 && (len(onlyA) == 0 || len(onlyB) == 0) {
		return 100
	}

	sect := strings.Join(common, " ")
	combinedA := strings.TrimSpace(sect + " " + strings.Join(onlyA, " "))
	combinedB := strings.TrimSpace(sect + " " + strings.Join(onlyB, " "))

	best := ratio(combinedA, combinedB)
	if sect != "" {
		best = max(best, ratio(sect, combinedA), ratio(sect, combinedB))
	}
	return best
}

func ratio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}

	longest := max(len([]rune(a)), len([]rune(b)))
	dist := levenshtein.ComputeDistance(a, b)
	return 100 * (1 - float64(dist)/float64(longest))
}

func partialRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == len(long) {
		return ratio(a, b)
	}

	needle := string(short)
	best := 0.0
	for i := 0; i+len(short) <= len(long); i++ {
		if r := ratio(needle, string(long[i:i+len(short)])); r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}
	return best
}

// tokenSet returns the sorted, de-duplicated words of an already normalized string.
func tokenSet(s string) []string {
	toks := strings.Fields(s)
	slices.Sort(toks)
	return slices.Compact(toks)
}
