package validator

// Country is a calling-code entry offered by phone inputs
type Country struct {
	ISO      string
	Name     string
	DialCode string // digits only, without "+"
	Popular  bool
}

// countries is ordered by name. Several countries share a dial code
// ("1", "7"); the first entry in DialCodeOwners wins when resolving.
var countries = []Country{
	{ISO: "AF", Name: "Afghanistan", DialCode: "93", Popular: false},
	{ISO: "AL", Name: "Albania", DialCode: "355", Popular: false},
	{ISO: "DZ", Name: "Algeria", DialCode: "213", Popular: false},
	{ISO: "AD", Name: "Andorra", DialCode: "376", Popular: false},
	{ISO: "AO", Name: "Angola", DialCode: "244", Popular: false},
	{ISO: "AR", Name: "Argentina", DialCode: "54", Popular: false},
	{ISO: "AM", Name: "Armenia", DialCode: "374", Popular: false},
	{ISO: "AU", Name: "Australia", DialCode: "61", Popular: true},
	{ISO: "AT", Name: "Austria", DialCode: "43", Popular: false},
	{ISO: "AZ", Name: "Azerbaijan", DialCode: "994", Popular: false},
	{ISO: "BH", Name: "Bahrain", DialCode: "973", Popular: false},
	{ISO: "BD", Name: "Bangladesh", DialCode: "880", Popular: false},
	{ISO: "BY", Name: "Belarus", DialCode: "375", Popular: false},
	{ISO: "BE", Name: "Belgium", DialCode: "32", Popular: false},
	{ISO: "BZ", Name: "Belize", DialCode: "501", Popular: false},
	{ISO: "BO", Name: "Bolivia", DialCode: "591", Popular: false},
	{ISO: "BA", Name: "Bosnia", DialCode: "387", Popular: false},
	{ISO: "BR", Name: "Brazil", DialCode: "55", Popular: false},
	{ISO: "BN", Name: "Brunei", DialCode: "673", Popular: false},
	{ISO: "BG", Name: "Bulgaria", DialCode: "359", Popular: false},
	{ISO: "KH", Name: "Cambodia", DialCode: "855", Popular: false},
	{ISO: "CM", Name: "Cameroon", DialCode: "237", Popular: false},
	{ISO: "CA", Name: "Canada", DialCode: "1", Popular: true},
	{ISO: "CL", Name: "Chile", DialCode: "56", Popular: false},
	{ISO: "CN", Name: "China", DialCode: "86", Popular: false},
	{ISO: "CO", Name: "Colombia", DialCode: "57", Popular: false},
	{ISO: "CR", Name: "Costa Rica", DialCode: "506", Popular: false},
	{ISO: "HR", Name: "Croatia", DialCode: "385", Popular: false},
	{ISO: "CU", Name: "Cuba", DialCode: "53", Popular: false},
	{ISO: "CY", Name: "Cyprus", DialCode: "357", Popular: false},
	{ISO: "CZ", Name: "Czech Republic", DialCode: "420", Popular: false},
	{ISO: "DK", Name: "Denmark", DialCode: "45", Popular: false},
	{ISO: "DO", Name: "Dominican Republic", DialCode: "1", Popular: false},
	{ISO: "EC", Name: "Ecuador", DialCode: "593", Popular: false},
	{ISO: "EG", Name: "Egypt", DialCode: "20", Popular: false},
	{ISO: "SV", Name: "El Salvador", DialCode: "503", Popular: false},
	{ISO: "EE", Name: "Estonia", DialCode: "372", Popular: false},
	{ISO: "ET", Name: "Ethiopia", DialCode: "251", Popular: false},
	{ISO: "FI", Name: "Finland", DialCode: "358", Popular: false},
	{ISO: "FR", Name: "France", DialCode: "33", Popular: true},
	{ISO: "GE", Name: "Georgia", DialCode: "995", Popular: false},
	{ISO: "DE", Name: "Germany", DialCode: "49", Popular: true},
	{ISO: "GH", Name: "Ghana", DialCode: "233", Popular: false},
	{ISO: "GR", Name: "Greece", DialCode: "30", Popular: false},
	{ISO: "GT", Name: "Guatemala", DialCode: "502", Popular: false},
	{ISO: "HN", Name: "Honduras", DialCode: "504", Popular: false},
	{ISO: "HK", Name: "Hong Kong", DialCode: "852", Popular: false},
	{ISO: "HU", Name: "Hungary", DialCode: "36", Popular: false},
	{ISO: "IS", Name: "Iceland", DialCode: "354", Popular: false},
	{ISO: "IN", Name: "India", DialCode: "91", Popular: false},
	{ISO: "ID", Name: "Indonesia", DialCode: "62", Popular: false},
	{ISO: "IR", Name: "Iran", DialCode: "98", Popular: false},
	{ISO: "IQ", Name: "Iraq", DialCode: "964", Popular: false},
	{ISO: "IE", Name: "Ireland", DialCode: "353", Popular: false},
	{ISO: "IL", Name: "Israel", DialCode: "972", Popular: false},
	{ISO: "IT", Name: "Italy", DialCode: "39", Popular: true},
	{ISO: "JM", Name: "Jamaica", DialCode: "1", Popular: false},
	{ISO: "JP", Name: "Japan", DialCode: "81", Popular: false},
	{ISO: "JO", Name: "Jordan", DialCode: "962", Popular: false},
	{ISO: "KZ", Name: "Kazakhstan", DialCode: "7", Popular: false},
	{ISO: "KE", Name: "Kenya", DialCode: "254", Popular: false},
	{ISO: "KW", Name: "Kuwait", DialCode: "965", Popular: false},
	{ISO: "KG", Name: "Kyrgyzstan", DialCode: "996", Popular: false},
	{ISO: "LA", Name: "Laos", DialCode: "856", Popular: false},
	{ISO: "LV", Name: "Latvia", DialCode: "371", Popular: false},
	{ISO: "LB", Name: "Lebanon", DialCode: "961", Popular: false},
	{ISO: "LY", Name: "Libya", DialCode: "218", Popular: false},
	{ISO: "LT", Name: "Lithuania", DialCode: "370", Popular: false},
	{ISO: "LU", Name: "Luxembourg", DialCode: "352", Popular: false},
	{ISO: "MO", Name: "Macau", DialCode: "853", Popular: false},
	{ISO: "MY", Name: "Malaysia", DialCode: "60", Popular: false},
	{ISO: "MV", Name: "Maldives", DialCode: "960", Popular: false},
	{ISO: "MT", Name: "Malta", DialCode: "356", Popular: false},
	{ISO: "MX", Name: "Mexico", DialCode: "52", Popular: false},
	{ISO: "MD", Name: "Moldova", DialCode: "373", Popular: false},
	{ISO: "MC", Name: "Monaco", DialCode: "377", Popular: false},
	{ISO: "MN", Name: "Mongolia", DialCode: "976", Popular: false},
	{ISO: "ME", Name: "Montenegro", DialCode: "382", Popular: false},
	{ISO: "MA", Name: "Morocco", DialCode: "212", Popular: false},
	{ISO: "MM", Name: "Myanmar", DialCode: "95", Popular: false},
	{ISO: "NP", Name: "Nepal", DialCode: "977", Popular: false},
	{ISO: "NL", Name: "Netherlands", DialCode: "31", Popular: false},
	{ISO: "NZ", Name: "New Zealand", DialCode: "64", Popular: false},
	{ISO: "NI", Name: "Nicaragua", DialCode: "505", Popular: false},
	{ISO: "NG", Name: "Nigeria", DialCode: "234", Popular: false},
	{ISO: "NO", Name: "Norway", DialCode: "47", Popular: false},
	{ISO: "OM", Name: "Oman", DialCode: "968", Popular: false},
	{ISO: "PK", Name: "Pakistan", DialCode: "92", Popular: false},
	{ISO: "PA", Name: "Panama", DialCode: "507", Popular: false},
	{ISO: "PY", Name: "Paraguay", DialCode: "595", Popular: false},
	{ISO: "PE", Name: "Peru", DialCode: "51", Popular: false},
	{ISO: "PH", Name: "Philippines", DialCode: "63", Popular: false},
	{ISO: "PL", Name: "Poland", DialCode: "48", Popular: false},
	{ISO: "PT", Name: "Portugal", DialCode: "351", Popular: false},
	{ISO: "PR", Name: "Puerto Rico", DialCode: "1", Popular: false},
	{ISO: "QA", Name: "Qatar", DialCode: "974", Popular: false},
	{ISO: "RO", Name: "Romania", DialCode: "40", Popular: false},
	{ISO: "RU", Name: "Russia", DialCode: "7", Popular: false},
	{ISO: "SA", Name: "Saudi Arabia", DialCode: "966", Popular: false},
	{ISO: "RS", Name: "Serbia", DialCode: "381", Popular: false},
	{ISO: "SG", Name: "Singapore", DialCode: "65", Popular: false},
	{ISO: "SK", Name: "Slovakia", DialCode: "421", Popular: false},
	{ISO: "SI", Name: "Slovenia", DialCode: "386", Popular: false},
	{ISO: "ZA", Name: "South Africa", DialCode: "27", Popular: false},
	{ISO: "KR", Name: "South Korea", DialCode: "82", Popular: false},
	{ISO: "ES", Name: "Spain", DialCode: "34", Popular: true},
	{ISO: "LK", Name: "Sri Lanka", DialCode: "94", Popular: false},
	{ISO: "SE", Name: "Sweden", DialCode: "46", Popular: false},
	{ISO: "CH", Name: "Switzerland", DialCode: "41", Popular: false},
	{ISO: "TW", Name: "Taiwan", DialCode: "886", Popular: false},
	{ISO: "TJ", Name: "Tajikistan", DialCode: "992", Popular: false},
	{ISO: "TZ", Name: "Tanzania", DialCode: "255", Popular: false},
	{ISO: "TH", Name: "Thailand", DialCode: "66", Popular: false},
	{ISO: "TN", Name: "Tunisia", DialCode: "216", Popular: false},
	{ISO: "TR", Name: "Turkey", DialCode: "90", Popular: false},
	{ISO: "TM", Name: "Turkmenistan", DialCode: "993", Popular: false},
	{ISO: "UG", Name: "Uganda", DialCode: "256", Popular: false},
	{ISO: "UA", Name: "Ukraine", DialCode: "380", Popular: false},
	{ISO: "AE", Name: "United Arab Emirates", DialCode: "971", Popular: true},
	{ISO: "GB", Name: "United Kingdom", DialCode: "44", Popular: true},
	{ISO: "US", Name: "United States", DialCode: "1", Popular: true},
	{ISO: "UY", Name: "Uruguay", DialCode: "598", Popular: false},
	{ISO: "UZ", Name: "Uzbekistan", DialCode: "998", Popular: false},
	{ISO: "VE", Name: "Venezuela", DialCode: "58", Popular: false},
	{ISO: "VN", Name: "Vietnam", DialCode: "84", Popular: false},
	{ISO: "YE", Name: "Yemen", DialCode: "967", Popular: false},
	{ISO: "ZM", Name: "Zambia", DialCode: "260", Popular: false},
	{ISO: "ZW", Name: "Zimbabwe", DialCode: "263", Popular: false},
}

// DialCodeOwners maps shared calling codes to the country picked by default
var DialCodeOwners = map[string]string{
	"1": "US",
	"7": "RU",
}

// DefaultCountryISO is preselected by phone inputs
const DefaultCountryISO = "US"

// Countries returns every known country
func Countries() []Country {
	out := make([]Country, len(countries))
	copy(out, countries)
	return out
}

// PopularCountries returns the countries pinned at the top of pickers
func PopularCountries() []Country {
	var out []Country
	for _, c := range countries {
		if c.Popular {
			out = append(out, c)
		}
	}
	return out
}

// LookupCountry finds a country by ISO code
func LookupCountry(iso string) (Country, bool) {
	for _, c := range countries {
		if c.ISO == iso {
			return c, true
		}
	}
	return Country{}, false
}

// countryForDialCode resolves a dial code to one country
func countryForDialCode(code string) (Country, bool) {
	if iso, ok := DialCodeOwners[code]; ok {
		return LookupCountry(iso)
	}
	for _, c := range countries {
		if c.DialCode == code {
			return c, true
		}
	}
	return Country{}, false
}
