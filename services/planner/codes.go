package planner

import "strings"

// destinationCode maps a free-text destination onto the codes the search
// and compliance providers speak.
type destinationCode struct {
	City    string // IATA city code
	Country string // ISO 3166-1 alpha-2
}

var destinationCodes = map[string]destinationCode{
	"thailand":  {City: "BKK", Country: "TH"},
	"bangkok":   {City: "BKK", Country: "TH"},
	"phuket":    {City: "HKT", Country: "TH"},
	"paris":     {City: "PAR", Country: "FR"},
	"france":    {City: "PAR", Country: "FR"},
	"tokyo":     {City: "TYO", Country: "JP"},
	"japan":     {City: "TYO", Country: "JP"},
	"kyoto":     {City: "UKY", Country: "JP"},
	"london":    {City: "LON", Country: "GB"},
	"zermatt":   {City: "ZRH", Country: "CH"},
	"zurich":    {City: "ZRH", Country: "CH"},
	"aspen":     {City: "ASE", Country: "US"},
	"whistler":  {City: "YVR", Country: "CA"},
	"bali":      {City: "DPS", Country: "ID"},
	"maldives":  {City: "MLE", Country: "MV"},
	"barcelona": {City: "BCN", Country: "ES"},
	"munich":    {City: "MUC", Country: "DE"},
	"singapore": {City: "SIN", Country: "SG"},
	"dubai":     {City: "DXB", Country: "AE"},
	"new york":  {City: "NYC", Country: "US"},
	"india":     {City: "DEL", Country: "IN"},
	"delhi":     {City: "DEL", Country: "IN"},
	"mumbai":    {City: "BOM", Country: "IN"},
}

// resolveCodes looks up a destination's codes; destinations like
// "Bangkok, Thailand" match on either part. Unknown destinations get a
// generic placeholder city code so search providers can still run.
func resolveCodes(destination string) destinationCode {
	key := strings.ToLower(strings.TrimSpace(destination))
	if code, ok := destinationCodes[key]; ok {
		return code
	}
	for _, part := range strings.Split(key, ",") {
		if code, ok := destinationCodes[strings.TrimSpace(part)]; ok {
			return code
		}
	}
	return destinationCode{City: "XXX", Country: ""}
}
