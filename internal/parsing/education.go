package parsing

import "strings"

// Degree ordinals. Zero means no recognised degree.
const (
	DegreeNone     = 0
	DegreeBachelor = 1
	DegreeMaster   = 2
	DegreePhD      = 3
)

var degreeLabels = map[int]string{
	DegreeBachelor: "Bachelor's",
	DegreeMaster:   "Master's",
	DegreePhD:      "PhD",
}

// degreePatterns are checked in order; the first match wins.
var degreePatterns = []struct {
	ordinal int
	tokens  []string
}{
	{DegreePhD, []string{"phd", "ph.d", "doctor", "doctorate"}},
	{DegreeMaster, []string{"master", "msc", "m.sc", "ms", "m.s", "mba", "meng"}},
	{DegreeBachelor, []string{"bachelor", "bsc", "b.sc", "bs", "b.s", "ba", "b.a", "beng", "btech", "b.tech", "undergraduate"}},
}

// DegreeOrdinal maps a degree string to its ordinal (Bachelor's=1, Master's=2, PhD=3).
func DegreeOrdinal(degree string) int {
	lower := strings.ToLower(strings.TrimSpace(degree))
	if lower == "" {
		return DegreeNone
	}

	words := strings.FieldsFunc(lower, func(r rune) bool {
		return r == ' ' || r == ',' || r == '/' || r == '(' || r == ')' || r == '\''
	})

	for _, p := range degreePatterns {
		for _, token := range p.tokens {
			for _, w := range words {
				w = strings.Trim(w, ".")
				if w == token || (len(token) > 3 && strings.HasPrefix(w, token)) {
					return p.ordinal
				}
			}
		}
	}
	return DegreeNone
}

// MaxDegree returns the highest ordinal in degrees.
func MaxDegree(degrees []string) int {
	highest := DegreeNone
	for _, d := range degrees {
		if o := DegreeOrdinal(d); o > highest {
			highest = o
		}
	}
	return highest
}

// DegreeLabel returns the display name of an ordinal.
func DegreeLabel(ordinal int) string {
	return degreeLabels[ordinal]
}
