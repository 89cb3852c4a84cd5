package geo

var alpha3 = map[string]string{
	"AUS": "AU",
	"AUT": "AT",
	"BEL": "BE",
	"CAN": "CA",
	"CHE": "CH",
	"CZE": "CZ",
	"DEU": "DE",
	"DNK": "DK",
	"ESP": "ES",
	"FIN": "FI",
	"FRA": "FR",
	"GBR": "GB",
	"IRL": "IE",
	"ITA": "IT",
	"LIE": "LI",
	"LUX": "LU",
	"NLD": "NL",
	"NOR": "NO",
	"NZL": "NZ",
	"POL": "PL",
	"PRT": "PT",
	"SWE": "SE",
	"USA": "US",
}

var countryNames = map[string]string{
	"australia":                "AU",
	"austria":                  "AT",
	"österreich":               "AT",
	"belgium":                  "BE",
	"belgien":                  "BE",
	"canada":                   "CA",
	"switzerland":              "CH",
	"schweiz":                  "CH",
	"czech republic":           "CZ",
	"czechia":                  "CZ",
	"germany":                  "DE",
	"deutschland":              "DE",
	"denmark":                  "DK",
	"spain":                    "ES",
	"finland":                  "FI",
	"france":                   "FR",
	"frankreich":               "FR",
	"united kingdom":           "GB",
	"great britain":            "GB",
	"ireland":                  "IE",
	"italy":                    "IT",
	"italien":                  "IT",
	"liechtenstein":            "LI",
	"luxembourg":               "LU",
	"luxemburg":                "LU",
	"netherlands":              "NL",
	"the netherlands":          "NL",
	"niederlande":              "NL",
	"norway":                   "NO",
	"new zealand":              "NZ",
	"poland":                   "PL",
	"polen":                    "PL",
	"portugal":                 "PT",
	"sweden":                   "SE",
	"schweden":                 "SE",
	"united states":            "US",
	"united states of america": "US",
}
