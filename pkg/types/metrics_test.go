// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountSentinels(t *testing.T) {
	var missing Count
	assert.Equal(t, "-", missing.String())
	assert.Equal(t, 0, missing.OrZero())

	zero := KnownCount(0)
	assert.Equal(t, "0", zero.String(), "a genuine zero is not the no-data sentinel")
	assert.Equal(t, 0, zero.OrZero())

	assert.Equal(t, "42", KnownCount(42).String())
}

func TestReadsEstimateVariants(t *testing.T) {
	assert.Equal(t, "123", ReadsOf(123).String())
	assert.Equal(t, "Protected", ProtectedReads().String())
	assert.Equal(t, "-", ReadsEstimate{}.String())
}

func TestDisplayRateOverride(t *testing.T) {
	r := MetricRecord{Platform: PlatformZenodo, DLRate: "25.0%"}
	assert.Equal(t, "25.0%", r.DisplayRate())

	r.Platform = PlatformEngrxiv
	assert.Equal(t, "N/A", r.DisplayRate(), "non-registry platforms have no comparable views denominator")
}

func TestIsDOI(t *testing.T) {
	assert.True(t, IsDOI("10.31224/5289"))
	assert.True(t, IsDOI("10.5281/zenodo.17428600"))
	assert.False(t, IsDOI("zenodo.17428600"))
	assert.False(t, IsDOI("10.31224/with space"))
	assert.False(t, IsDOI(""))
}

func TestPublicationValidate(t *testing.T) {
	ok := Publication{DOI: "10.31224/5289", Title: "A Paper", Platform: PlatformEngrxiv}
	assert.NoError(t, ok.Validate())

	bad := ok
	bad.DOI = "not-a-doi"
	assert.Error(t, bad.Validate())

	bad = ok
	bad.Platform = Platform("SSRN")
	assert.Error(t, bad.Validate())

	bad = ok
	bad.Title = "  "
	assert.Error(t, bad.Validate())
}

func TestShortenTitle(t *testing.T) {
	assert.Equal(t, "Short", ShortenTitle("Short: Sub B", 30))
	assert.Equal(t, "A Very Long Title That Keeps G...", ShortenTitle("A Very Long Title That Keeps Going And Going", 30))
}
