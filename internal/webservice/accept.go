package webservice

import (
	"strconv"
	"strings"
)

// mediaRange is one parsed entry of an Accept header.
type mediaRange struct {
	mainType string
	subType  string
	quality  float64
}

// specificity ranks exact matches over type wildcards over */*.
func (r mediaRange) specificity() int {
	switch {
	case r.mainType == "*":
		return 0
	case r.subType == "*":
		return 1
	default:
		return 2
	}
}

func (r mediaRange) matches(mainType, subType string) bool {
	if r.mainType == "*" {
		return true
	}
	if r.mainType != mainType {
		return false
	}
	return r.subType == "*" || r.subType == subType
}

// parseAccept parses an Accept header into media ranges. Malformed entries
// are skipped rather than failing the whole header.
func parseAccept(header string) []mediaRange {
	var ranges []mediaRange
	for _, entry := range strings.Split(header, ",") {
		parts := strings.Split(entry, ";")
		mediaType := strings.TrimSpace(parts[0])
		mainType, subType, ok := strings.Cut(mediaType, "/")
		if !ok || mainType == "" || subType == "" {
			continue
		}

		quality := 1.0
		for _, param := range parts[1:] {
			key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
			if !ok || strings.TrimSpace(key) != "q" {
				continue
			}
			q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil || q < 0 || q > 1 {
				continue
			}
			quality = q
		}

		ranges = append(ranges, mediaRange{
			mainType: strings.ToLower(mainType),
			subType:  strings.ToLower(subType),
			quality:  quality,
		})
	}
	return ranges
}

// bestMatch picks the offered media type the Accept header prefers most.
// Offers are tried in registration order, so quality ties go to the earlier
// registration. Returns "" when nothing is acceptable.
func bestMatch(offers []string, header string) string {
	ranges := parseAccept(header)
	if len(ranges) == 0 {
		return ""
	}

	best := ""
	bestQuality := 0.0
	for _, offer := range offers {
		mainType, subType, ok := strings.Cut(strings.ToLower(offer), "/")
		if !ok {
			continue
		}

		// The most specific matching range decides this offer's quality.
		quality := 0.0
		spec := -1
		for _, r := range ranges {
			if !r.matches(mainType, subType) {
				continue
			}
			if r.specificity() > spec {
				spec = r.specificity()
				quality = r.quality
			}
		}

		if quality > bestQuality {
			bestQuality = quality
			best = offer
		}
	}
	return best
}
