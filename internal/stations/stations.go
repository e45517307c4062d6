package stations

import (
	"sort"
	"strings"
)

// stationCodes maps WARM station locations across Illinois to their
// three-letter reporting codes.
var stationCodes = map[string]string{
	"BELLEVILLE":    "FRM",
	"BIG BEND":      "BBC",
	"BONDVILLE":     "BVL",
	"BROWNSTOWN":    "BRW",
	"CARBONDALE":    "SIU",
	"CHAMPAIGN":     "CMI",
	"DEKALB":        "DEK",
	"DIXON SPRINGS": "DXS",
	"FAIRFIELD":     "FAI",
	"FREEPORT":      "FRE",
	"KILBOURNE":     "SFM",
	"MONMOUTH":      "MON",
	"OLNEY":         "OLN",
	"PEORIA":        "ICC",
	"PERRY":         "ORR",
	"REND LAKE":     "RND",
	"SNICARTE":      "SNI",
	"ST. CHARLES":   "STC",
	"SPRINGFIELD":   "LLC",
	"STELLE":        "STE",
}

// Code returns the station code for a location name, matching
// case-insensitively. The second return value reports whether the
// location is known.
func Code(location string) (string, bool) {
	code, ok := stationCodes[strings.ToUpper(strings.TrimSpace(location))]
	return code, ok
}

// Locations returns all known location names in sorted order
func Locations() []string {
	locations := make([]string, 0, len(stationCodes))
	for location := range stationCodes {
		locations = append(locations, location)
	}

	sort.Strings(locations)

	return locations
}

// Mappings renders the location table for prompt embedding
func Mappings() string {
	var sb strings.Builder

	for _, location := range Locations() {
		sb.WriteString("- ")
		sb.WriteString(location)
		sb.WriteString(": ")
		sb.WriteString(stationCodes[location])
		sb.WriteString("\n")
	}

	return sb.String()
}

// Annotate rewrites location mentions in a question to carry their station
// code, e.g. "rainfall in Peoria" becomes
// "rainfall in Peoria (Station: ICC)". Matching is case-insensitive and
// each location is annotated at most once. Mentioned returns the codes of
// every location found, in question order of first appearance.
func Annotate(question string) (annotated string, mentioned []string) {
	annotated = question

	type match struct {
		index    int
		location string
		code     string
	}

	var matches []match

	lower := strings.ToLower(annotated)

	for _, location := range Locations() {
		idx := strings.Index(lower, strings.ToLower(location))
		if idx < 0 {
			continue
		}

		matches = append(matches, match{index: idx, location: location, code: stationCodes[location]})
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].index < matches[j].index })

	for _, m := range matches {
		idx := strings.Index(strings.ToLower(annotated), strings.ToLower(m.location))
		if idx < 0 {
			continue
		}

		original := annotated[idx : idx+len(m.location)]
		annotated = annotated[:idx] + original + " (Station: " + m.code + ")" + annotated[idx+len(m.location):]
		mentioned = append(mentioned, m.code)
	}

	return annotated, mentioned
}
