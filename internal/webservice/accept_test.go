package webservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAccept(t *testing.T) {
	t.Run("SingleType", func(t *testing.T) {
		ranges := parseAccept("application/json")
		assert.Len(t, ranges, 1)
		assert.Equal(t, "application", ranges[0].mainType)
		assert.Equal(t, "json", ranges[0].subType)
		assert.Equal(t, 1.0, ranges[0].quality)
	})

	t.Run("QualityValues", func(t *testing.T) {
		ranges := parseAccept("application/xml;q=0.9, application/json;q=0.4")
		assert.Len(t, ranges, 2)
		assert.Equal(t, 0.9, ranges[0].quality)
		assert.Equal(t, 0.4, ranges[1].quality)
	})

	t.Run("SkipsMalformedEntries", func(t *testing.T) {
		ranges := parseAccept("garbage, application/json")
		assert.Len(t, ranges, 1)
		assert.Equal(t, "json", ranges[0].subType)
	})

	t.Run("IgnoresOutOfRangeQuality", func(t *testing.T) {
		ranges := parseAccept("application/json;q=7")
		assert.Len(t, ranges, 1)
		assert.Equal(t, 1.0, ranges[0].quality)
	})
}

func TestBestMatch(t *testing.T) {
	offers := []string{"application/xml", "application/json"}

	t.Run("ExactType", func(t *testing.T) {
		assert.Equal(t, "application/json", bestMatch(offers, "application/json"))
	})

	t.Run("HigherQualityWins", func(t *testing.T) {
		got := bestMatch(offers, "application/xml;q=0.2, application/json;q=0.8")
		assert.Equal(t, "application/json", got)
	})

	t.Run("WildcardMatchesFirstOffer", func(t *testing.T) {
		assert.Equal(t, "application/xml", bestMatch(offers, "*/*"))
	})

	t.Run("SubtypeWildcard", func(t *testing.T) {
		assert.Equal(t, "application/xml", bestMatch(offers, "application/*"))
	})

	t.Run("SpecificRangeBeatsWildcard", func(t *testing.T) {
		// json is named with a low q, the wildcard carries a high q: the
		// most specific matching range decides each offer's quality.
		got := bestMatch(offers, "application/json;q=0.1, */*;q=0.9")
		assert.Equal(t, "application/xml", got)
	})

	t.Run("TieBreaksOnRegistrationOrder", func(t *testing.T) {
		got := bestMatch(offers, "application/xml;q=0.5, application/json;q=0.5")
		assert.Equal(t, "application/xml", got)
	})

	t.Run("NoMatch", func(t *testing.T) {
		assert.Equal(t, "", bestMatch(offers, "text/html"))
	})

	t.Run("ZeroQualityExcludes", func(t *testing.T) {
		assert.Equal(t, "", bestMatch([]string{"application/json"}, "application/json;q=0"))
	})
}
