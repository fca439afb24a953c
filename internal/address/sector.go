package address

import (
	"regexp"
)

var sectorPattern = regexp.MustCompile(`(?:^| )(?:sectorul|sector|s) ?0*([1-6])(?: |$)`)

// ResolveBucharestSector finds a Bucharest sector reference anywhere in text
// and returns it as SECTOR1..SECTOR6.
func ResolveBucharestSector(text string) (string, bool) {
	m := sectorPattern.FindStringSubmatch(Normalize(text))
	if m == nil {
		return "", false
	}
	return "SECTOR" + m[1], true
}
