package address

import (
	"regexp"
	"strings"
)

// BucharestSubdivision is the ISO 3166-2 code of the municipality of Bucharest
const BucharestSubdivision = "RO-B"

var countyNames = []struct {
	name string
	code string
}{
	{"Alba", "RO-AB"},
	{"Arad", "RO-AR"},
	{"Argeș", "RO-AG"},
	{"Bacău", "RO-BC"},
	{"Bihor", "RO-BH"},
	{"Bistrița-Năsăud", "RO-BN"},
	{"Botoșani", "RO-BT"},
	{"Brașov", "RO-BV"},
	{"Brăila", "RO-BR"},
	{"Buzău", "RO-BZ"},
	{"Caraș-Severin", "RO-CS"},
	{"Călărași", "RO-CL"},
	{"Cluj", "RO-CJ"},
	{"Constanța", "RO-CT"},
	{"Covasna", "RO-CV"},
	{"Dâmbovița", "RO-DB"},
	{"Dolj", "RO-DJ"},
	{"Galați", "RO-GL"},
	{"Giurgiu", "RO-GR"},
	{"Gorj", "RO-GJ"},
	{"Harghita", "RO-HR"},
	{"Hunedoara", "RO-HD"},
	{"Ialomița", "RO-IL"},
	{"Iași", "RO-IS"},
	{"Ilfov", "RO-IF"},
	{"Maramureș", "RO-MM"},
	{"Mehedinți", "RO-MH"},
	{"Mureș", "RO-MS"},
	{"Neamț", "RO-NT"},
	{"Olt", "RO-OT"},
	{"Prahova", "RO-PH"},
	{"Satu Mare", "RO-SM"},
	{"Sălaj", "RO-SJ"},
	{"Sibiu", "RO-SB"},
	{"Suceava", "RO-SV"},
	{"Teleorman", "RO-TR"},
	{"Timiș", "RO-TM"},
	{"Tulcea", "RO-TL"},
	{"Vaslui", "RO-VS"},
	{"Vâlcea", "RO-VL"},
	{"Vrancea", "RO-VN"},
	{"București", BucharestSubdivision},

	// aliases
	{"Bucharest", BucharestSubdivision},
	{"Dîmbovița", "RO-DB"},
	{"Vîlcea", "RO-VL"},
	{"Bistrița", "RO-BN"},
	{"Caraș", "RO-CS"},
	// glued forms left behind when a hyphen or space is dropped with the diacritics
	{"Bistritanasaud", "RO-BN"},
	{"Carasseverin", "RO-CS"},
	{"Satumare", "RO-SM"},
}

var counties = func() map[string]string {
	m := make(map[string]string, len(countyNames))
	for _, c := range countyNames {
		m[Normalize(c.name)] = c.code
	}
	return m
}()

var qualifiers = regexp.MustCompile(`\b(judetul|municipiul|comuna|orasul)\b|\bsector(ul)?\b( \d+)?`)

// ResolveCounty maps a county (or Bucharest) name to its ISO 3166-2 code.
// Administrative qualifiers are stripped on a first miss.
func ResolveCounty(text string) (string, bool) {
	key := Normalize(text)
	if key == "" {
		return "", false
	}
	if code, ok := counties[key]; ok {
		return code, true
	}

	stripped := strings.Join(strings.Fields(qualifiers.ReplaceAllString(key, " ")), " ")
	if stripped == "" || stripped == key {
		return "", false
	}
	code, ok := counties[stripped]
	return code, ok
}

// IsBucharestSubdivision reports whether code is the Bucharest subdivision
func IsBucharestSubdivision(code string) bool {
	return strings.EqualFold(strings.TrimSpace(code), BucharestSubdivision)
}
