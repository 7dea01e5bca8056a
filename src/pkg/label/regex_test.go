package label

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRegexExtractor(t *testing.T, text string) *CandidateRecord {
	t.Helper()
	extractor := &RegexExtractor{}
	record := extractor.Extract(context.Background(), ExtractorInput{OcrText: text})
	require.NotNil(t, record, "regex extractor must never return nil")
	return record
}

func TestRegexExtractorKnownName(t *testing.T) {
	record := runRegexExtractor(t, "Cetamol 500 mg\nParacetamol Tablets IP")
	require.NotNil(t, record.Name)
	assert.Equal(t, "CETAMOL 500 MG", *record.Name)

	record = runRegexExtractor(t, "nothing recognizable on this label")
	assert.Nil(t, record.Name)
}

func TestRegexExtractorBatchGuess(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"Batch No: FBSL 2209", "FBSL 2209"},
		{"Batch No. FBLSL 2209", "FBSL 2209"},
		{"B.No. AB-1234", "AB 1234"},
		{"Lot QX 9999", "QX 9999"},
	}
	for _, tc := range cases {
		record := runRegexExtractor(t, tc.text)
		require.NotNil(t, record.BatchNumber, "text: %q", tc.text)
		assert.Equal(t, tc.want, *record.BatchNumber)
	}

	record := runRegexExtractor(t, "Batch No: B N O 1 2 3 4")
	assert.Nil(t, record.BatchNumber)
}

func TestRegexExtractorTwoDatesReadingOrder(t *testing.T) {
	record := runRegexExtractor(t, "Mfd. 2022-09-01 some text Exp. 2024-10-01")
	require.NotNil(t, record.ManufacturingDate)
	require.NotNil(t, record.ExpiryDate)
	assert.Equal(t, "2022-09-01", *record.ManufacturingDate)
	assert.Equal(t, "2024-10-01", *record.ExpiryDate)
}

func TestRegexExtractorSingleDateIsExpiry(t *testing.T) {
	record := runRegexExtractor(t, "Use before OCT 2024")
	assert.Nil(t, record.ManufacturingDate)
	require.NotNil(t, record.ExpiryDate)
	assert.Equal(t, "2024-10-01", *record.ExpiryDate)
}

func TestRegexExtractorPackSizes(t *testing.T) {
	cases := []struct {
		name      string
		text      string
		wantSlips *int
		wantPer   *int
	}{
		{"slips first", "3 x 10 Tablets", intPtr(3), intPtr(10)},
		{"units first", "10 Tablets x 10", intPtr(10), intPtr(10)},
		{"lone units", "Each strip of 10 Capsules", nil, intPtr(10)},
		{"no pack info", "just a label", nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			record := runRegexExtractor(t, tc.text)
			assert.Equal(t, tc.wantSlips, record.SlipsCount)
			assert.Equal(t, tc.wantPer, record.TabletsPerSlip)
		})
	}
}

func TestRegexExtractorMrp(t *testing.T) {
	record := runRegexExtractor(t, "some line\nMRP Rs. 25.50\nother line")
	require.NotNil(t, record.MrpAmount)
	assert.Equal(t, 25.50, *record.MrpAmount)
	require.NotNil(t, record.MrpCurrency)
	assert.Equal(t, "NPR", *record.MrpCurrency)
	require.NotNil(t, record.MrpText)
	assert.Equal(t, "MRP Rs. 25.50", *record.MrpText)
}

func TestRegexExtractorMrpInrBeatsRsGuess(t *testing.T) {
	record := runRegexExtractor(t, "Price INR 120")
	require.NotNil(t, record.MrpAmount)
	assert.Equal(t, 120.0, *record.MrpAmount)
	require.NotNil(t, record.MrpCurrency)
	assert.Equal(t, "INR", *record.MrpCurrency)
}

func TestRegexExtractorMrpDevanagariKeyword(t *testing.T) {
	record := runRegexExtractor(t, "मूल्य रु 30")
	require.NotNil(t, record.MrpAmount)
	assert.Equal(t, 30.0, *record.MrpAmount)
	require.NotNil(t, record.MrpCurrency)
	assert.Equal(t, "NPR", *record.MrpCurrency)
}

func TestRegexExtractorEmptyText(t *testing.T) {
	record := runRegexExtractor(t, "")
	assert.False(t, record.HasSignal())
}

func intPtr(v int) *int { return &v }
