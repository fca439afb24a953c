package refdata

import "strings"

// Country is a single row of the country reference table
type Country struct {
	Name   string
	Alpha2 string
}

// countries is ordered: the first row for an alpha-2 code carries the
// canonical name, later rows are alternative spellings (Romanian names,
// common short forms).
var countries = []Country{
	{"Afghanistan", "AF"},
	{"Aland Islands", "AX"},
	{"Albania", "AL"},
	{"Algeria", "DZ"},
	{"American Samoa", "AS"},
	{"Andorra", "AD"},
	{"Angola", "AO"},
	{"Anguilla", "AI"},
	{"Antarctica", "AQ"},
	{"Antigua and Barbuda", "AG"},
	{"Argentina", "AR"},
	{"Armenia", "AM"},
	{"Aruba", "AW"},
	{"Australia", "AU"},
	{"Austria", "AT"},
	{"Azerbaijan", "AZ"},
	{"Bahamas", "BS"},
	{"Bahrain", "BH"},
	{"Bangladesh", "BD"},
	{"Barbados", "BB"},
	{"Belarus", "BY"},
	{"Belgium", "BE"},
	{"Belize", "BZ"},
	{"Benin", "BJ"},
	{"Bermuda", "BM"},
	{"Bhutan", "BT"},
	{"Bolivia", "BO"},
	{"Bonaire, Sint Eustatius and Saba", "BQ"},
	{"Bosnia and Herzegovina", "BA"},
	{"Botswana", "BW"},
	{"Bouvet Island", "BV"},
	{"Brazil", "BR"},
	{"British Indian Ocean Territory", "IO"},
	{"Brunei Darussalam", "BN"},
	{"Bulgaria", "BG"},
	{"Burkina Faso", "BF"},
	{"Burundi", "BI"},
	{"Cabo Verde", "CV"},
	{"Cambodia", "KH"},
	{"Cameroon", "CM"},
	{"Canada", "CA"},
	{"Cayman Islands", "KY"},
	{"Central African Republic", "CF"},
	{"Chad", "TD"},
	{"Chile", "CL"},
	{"China", "CN"},
	{"Christmas Island", "CX"},
	{"Cocos (Keeling) Islands", "CC"},
	{"Colombia", "CO"},
	{"Comoros", "KM"},
	{"Congo", "CG"},
	{"Congo, Democratic Republic of the", "CD"},
	{"Cook Islands", "CK"},
	{"Costa Rica", "CR"},
	{"Cote d'Ivoire", "CI"},
	{"Croatia", "HR"},
	{"Cuba", "CU"},
	{"Curacao", "CW"},
	{"Cyprus", "CY"},
	{"Czechia", "CZ"},
	{"Denmark", "DK"},
	{"Djibouti", "DJ"},
	{"Dominica", "DM"},
	{"Dominican Republic", "DO"},
	{"Ecuador", "EC"},
	{"Egypt", "EG"},
	{"El Salvador", "SV"},
	{"Equatorial Guinea", "GQ"},
	{"Eritrea", "ER"},
	{"Estonia", "EE"},
	{"Eswatini", "SZ"},
	{"Ethiopia", "ET"},
	{"Falkland Islands (Malvinas)", "FK"},
	{"Faroe Islands", "FO"},
	{"Fiji", "FJ"},
	{"Finland", "FI"},
	{"France", "FR"},
	{"French Guiana", "GF"},
	{"French Polynesia", "PF"},
	{"French Southern Territories", "TF"},
	{"Gabon", "GA"},
	{"Gambia", "GM"},
	{"Georgia", "GE"},
	{"Germany", "DE"},
	{"Ghana", "GH"},
	{"Gibraltar", "GI"},
	{"Greece", "GR"},
	{"Greenland", "GL"},
	{"Grenada", "GD"},
	{"Guadeloupe", "GP"},
	{"Guam", "GU"},
	{"Guatemala", "GT"},
	{"Guernsey", "GG"},
	{"Guinea", "GN"},
	{"Guinea-Bissau", "GW"},
	{"Guyana", "GY"},
	{"Haiti", "HT"},
	{"Heard Island and McDonald Islands", "HM"},
	{"Holy See", "VA"},
	{"Honduras", "HN"},
	{"Hong Kong", "HK"},
	{"Hungary", "HU"},
	{"Iceland", "IS"},
	{"India", "IN"},
	{"Indonesia", "ID"},
	{"Iran", "IR"},
	{"Iraq", "IQ"},
	{"Ireland", "IE"},
	{"Isle of Man", "IM"},
	{"Israel", "IL"},
	{"Italy", "IT"},
	{"Jamaica", "JM"},
	{"Japan", "JP"},
	{"Jersey", "JE"},
	{"Jordan", "JO"},
	{"Kazakhstan", "KZ"},
	{"Kenya", "KE"},
	{"Kiribati", "KI"},
	{"Korea, Democratic People's Republic of", "KP"},
	{"Korea, Republic of", "KR"},
	{"Kosovo", "XK"},
	{"Kuwait", "KW"},
	{"Kyrgyzstan", "KG"},
	{"Lao People's Democratic Republic", "LA"},
	{"Latvia", "LV"},
	{"Lebanon", "LB"},
	{"Lesotho", "LS"},
	{"Liberia", "LR"},
	{"Libya", "LY"},
	{"Liechtenstein", "LI"},
	{"Lithuania", "LT"},
	{"Luxembourg", "LU"},
	{"Macao", "MO"},
	{"Madagascar", "MG"},
	{"Malawi", "MW"},
	{"Malaysia", "MY"},
	{"Maldives", "MV"},
	{"Mali", "ML"},
	{"Malta", "MT"},
	{"Marshall Islands", "MH"},
	{"Martinique", "MQ"},
	{"Mauritania", "MR"},
	{"Mauritius", "MU"},
	{"Mayotte", "YT"},
	{"Mexico", "MX"},
	{"Micronesia", "FM"},
	{"Moldova", "MD"},
	{"Monaco", "MC"},
	{"Mongolia", "MN"},
	{"Montenegro", "ME"},
	{"Montserrat", "MS"},
	{"Morocco", "MA"},
	{"Mozambique", "MZ"},
	{"Myanmar", "MM"},
	{"Namibia", "NA"},
	{"Nauru", "NR"},
	{"Nepal", "NP"},
	{"Netherlands", "NL"},
	{"New Caledonia", "NC"},
	{"New Zealand", "NZ"},
	{"Nicaragua", "NI"},
	{"Niger", "NE"},
	{"Nigeria", "NG"},
	{"Niue", "NU"},
	{"Norfolk Island", "NF"},
	{"North Macedonia", "MK"},
	{"Northern Mariana Islands", "MP"},
	{"Norway", "NO"},
	{"Oman", "OM"},
	{"Pakistan", "PK"},
	{"Palau", "PW"},
	{"Palestine, State of", "PS"},
	{"Panama", "PA"},
	{"Papua New Guinea", "PG"},
	{"Paraguay", "PY"},
	{"Peru", "PE"},
	{"Philippines", "PH"},
	{"Pitcairn", "PN"},
	{"Poland", "PL"},
	{"Portugal", "PT"},
	{"Puerto Rico", "PR"},
	{"Qatar", "QA"},
	{"Reunion", "RE"},
	{"Romania", "RO"},
	{"Russian Federation", "RU"},
	{"Rwanda", "RW"},
	{"Saint Barthelemy", "BL"},
	{"Saint Helena, Ascension and Tristan da Cunha", "SH"},
	{"Saint Kitts and Nevis", "KN"},
	{"Saint Lucia", "LC"},
	{"Saint Martin (French part)", "MF"},
	{"Saint Pierre and Miquelon", "PM"},
	{"Saint Vincent and the Grenadines", "VC"},
	{"Samoa", "WS"},
	{"San Marino", "SM"},
	{"Sao Tome and Principe", "ST"},
	{"Saudi Arabia", "SA"},
	{"Senegal", "SN"},
	{"Serbia", "RS"},
	{"Seychelles", "SC"},
	{"Sierra Leone", "SL"},
	{"Singapore", "SG"},
	{"Sint Maarten (Dutch part)", "SX"},
	{"Slovakia", "SK"},
	{"Slovenia", "SI"},
	{"Solomon Islands", "SB"},
	{"Somalia", "SO"},
	{"South Africa", "ZA"},
	{"South Georgia and the South Sandwich Islands", "GS"},
	{"South Sudan", "SS"},
	{"Spain", "ES"},
	{"Sri Lanka", "LK"},
	{"Sudan", "SD"},
	{"Suriname", "SR"},
	{"Svalbard and Jan Mayen", "SJ"},
	{"Sweden", "SE"},
	{"Switzerland", "CH"},
	{"Syrian Arab Republic", "SY"},
	{"Taiwan", "TW"},
	{"Tajikistan", "TJ"},
	{"Tanzania", "TZ"},
	{"Thailand", "TH"},
	{"Timor-Leste", "TL"},
	{"Togo", "TG"},
	{"Tokelau", "TK"},
	{"Tonga", "TO"},
	{"Trinidad and Tobago", "TT"},
	{"Tunisia", "TN"},
	{"Turkey", "TR"},
	{"Turkmenistan", "TM"},
	{"Turks and Caicos Islands", "TC"},
	{"Tuvalu", "TV"},
	{"Uganda", "UG"},
	{"Ukraine", "UA"},
	{"United Arab Emirates", "AE"},
	{"United Kingdom", "GB"},
	{"United States", "US"},
	{"United States Minor Outlying Islands", "UM"},
	{"Uruguay", "UY"},
	{"Uzbekistan", "UZ"},
	{"Vanuatu", "VU"},
	{"Venezuela", "VE"},
	{"Viet Nam", "VN"},
	{"Virgin Islands (British)", "VG"},
	{"Virgin Islands (U.S.)", "VI"},
	{"Wallis and Futuna", "WF"},
	{"Western Sahara", "EH"},
	{"Yemen", "YE"},
	{"Zambia", "ZM"},
	{"Zimbabwe", "ZW"},

	// Alternative spellings
	{"România", "RO"},
	{"Republica Moldova", "MD"},
	{"Republic of Moldova", "MD"},
	{"Germania", "DE"},
	{"Franța", "FR"},
	{"Italia", "IT"},
	{"Spania", "ES"},
	{"Ungaria", "HU"},
	{"Austria", "AT"},
	{"Olanda", "NL"},
	{"Țările de Jos", "NL"},
	{"Belgia", "BE"},
	{"Polonia", "PL"},
	{"Cehia", "CZ"},
	{"Czech Republic", "CZ"},
	{"Slovacia", "SK"},
	{"Grecia", "GR"},
	{"Croația", "HR"},
	{"Slovenia", "SI"},
	{"Suedia", "SE"},
	{"Danemarca", "DK"},
	{"Finlanda", "FI"},
	{"Irlanda", "IE"},
	{"Portugalia", "PT"},
	{"Letonia", "LV"},
	{"Lituania", "LT"},
	{"Cipru", "CY"},
	{"Elveția", "CH"},
	{"Norvegia", "NO"},
	{"Turcia", "TR"},
	{"Türkiye", "TR"},
	{"Ucraina", "UA"},
	{"Marea Britanie", "GB"},
	{"Regatul Unit", "GB"},
	{"Great Britain", "GB"},
	{"UK", "GB"},
	{"Statele Unite ale Americii", "US"},
	{"Statele Unite", "US"},
	{"United States of America", "US"},
	{"USA", "US"},
	{"SUA", "US"},
	{"Russia", "RU"},
	{"Rusia", "RU"},
	{"China", "CN"},
	{"Japonia", "JP"},
	{"South Korea", "KR"},
	{"Vietnam", "VN"},
	{"Macedonia de Nord", "MK"},
	{"Muntenegru", "ME"},
	{"Bosnia și Herțegovina", "BA"},
	{"Ivory Coast", "CI"},
}

var byAlpha2 = func() map[string]Country {
	m := make(map[string]Country, len(countries))
	for _, c := range countries {
		if _, ok := m[c.Alpha2]; !ok {
			m[c.Alpha2] = c
		}
	}
	return m
}()

// Countries returns a copy of the ordered country table
func Countries() []Country {
	out := make([]Country, len(countries))
	copy(out, countries)
	return out
}

// CountryByAlpha2 returns the canonical row for an ISO 3166-1 alpha-2 code
func CountryByAlpha2(code string) (Country, bool) {
	c, ok := byAlpha2[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// IsAlpha2 reports whether code is a two-letter code present in the table
func IsAlpha2(code string) bool {
	_, ok := CountryByAlpha2(code)
	return ok
}
