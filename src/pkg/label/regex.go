package label

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

/*
RegexExtractor is the deterministic safety net. It is always computed (cheap,
no I/O) and serves as the last resort when both model calls fail, as a
corroborating vote in batch reconciliation, and as a tie-break for name
selection. It implements the same Extractor interface as the model-based
extractors so unit tests can run the whole chain without network access.
*/
type RegexExtractor struct{}

// Known product-name patterns. An extendable allow-list, not general NLP:
// names the shop actually stocks, with an optional strength suffix.
var knownNameRegexps = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(CETAMOL|PARACETAMOL|SINEX|FLEXON|NIMS|IBUPROFEN|AMOXICILLIN|AZITHROMYCIN|CETIRIZINE|PANTOPRAZOLE|OMEPRAZOLE|METFORMIN|ATORVASTATIN|SALBUTAMOL|AMLODIPINE|LOSARTAN|DOMPERIDONE|RANITIDINE)\b(\s*\d+\s*MG)?`),
	regexp.MustCompile(`(?i)\b(ZINC|CALCIUM|MULTIVITAMIN|VITAMIN\s*[A-E]\d?)\b(\s*\d+\s*MG)?`),
}

var (
	fullDateRegexps = []*regexp.Regexp{
		// ISO-ish and day-first numerics with "/", "-", "." separators
		regexp.MustCompile(`\b\d{4}[/.\-]\d{1,2}[/.\-]\d{1,2}\b`),
		regexp.MustCompile(`\b\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4}\b`),
		// full month name + day + year, and month name + year only
		regexp.MustCompile(`(?i)\b[A-Z]{3,9}\.?\s+\d{1,2}[,\s]+\d{4}\b`),
		regexp.MustCompile(`(?i)\b[A-Z]{3,9}\.?[\s\-]+\d{4}\b`),
	}

	batchLineRegexp = regexp.MustCompile(`(?i)\b(?:batch|lot|b)\W*(?:no\W*)?([A-Za-z]{2,5}[\s\-]?\d{4,6})`)

	// Pack size, three patterns in priority order.
	packSlipsFirstRegexp = regexp.MustCompile(`(?i)\b(\d{1,3})\s*[x×]\s*(\d{1,3})\s*(?:TAB|CAP)`)
	packUnitsFirstRegexp = regexp.MustCompile(`(?i)\b(\d{1,3})\s*(?:TABS?|CAPS?|TABLETS?|CAPSULES?)\.?\s*[x×]\s*(\d{1,3})\b`)
	packLoneRegexp       = regexp.MustCompile(`(?i)\b(\d{1,3})\s*(?:TABS?|CAPS?|TABLETS?|CAPSULES?)\b`)

	mrpKeywordRegexp  = regexp.MustCompile(`(?i)(mrp|m\.?r\.?p|price|मूल्य|रु)`)
	mrpAmountRegexp   = regexp.MustCompile(`(\d+(?:[.,]\d{1,2})?)`)
	// \b is ASCII-only in Go regexp; the Devanagari rupee marker sits
	// outside the boundary class and must be matched bare.
	currencyNprRegexp = regexp.MustCompile(`(?i)(\b(?:npr|rs)|रु)`)
	currencyInrRegexp = regexp.MustCompile(`(?i)\binr\b`)
)

/*
Extract runs every pattern family over the combined OCR text and returns a
partial CandidateRecord. It never returns nil: an empty record simply has all
fields nil. Images in the input are ignored — this extractor is text-only.
*/
func (x *RegexExtractor) Extract(_ context.Context, input ExtractorInput) *CandidateRecord {
	text := input.OcrText
	record := &CandidateRecord{}

	record.Name = extractKnownName(text)
	record.BatchNumber = extractBatchGuess(text)
	record.ManufacturingDate, record.ExpiryDate = extractDates(text)
	record.SlipsCount, record.TabletsPerSlip = extractPackSize(text)
	record.MrpAmount, record.MrpCurrency, record.MrpText = extractMrp(text)

	return record
}

func extractKnownName(text string) *string {
	for _, pattern := range knownNameRegexps {
		if m := pattern.FindString(text); m != "" {
			name := strings.Join(strings.Fields(strings.ToUpper(m)), " ")
			return &name
		}
	}
	return nil
}

func extractBatchGuess(text string) *string {
	m := batchLineRegexp.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	if token, ok := NormalizeBatchToken(m[1]); ok {
		return &token
	}
	return nil
}

/*
extractDates collects every normalizable date token in reading order.
With two or more dates the first is assumed manufacture and the second
expiry; with exactly one, it is assumed expiry only. (The two-dates ordering
assumption is a known labeling risk — an unrelated license date in first
position would be misread as manufacture; hinted dates override this at the
merge layer.)
*/
func extractDates(text string) (mfg *string, exp *string) {
	type hit struct {
		position  int
		canonical string
	}
	var hits []hit
	seen := map[string]bool{}

	for _, pattern := range fullDateRegexps {
		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			canonical, ok := NormalizeDate(text[loc[0]:loc[1]], text)
			if !ok || seen[canonical] {
				continue
			}
			seen[canonical] = true
			hits = append(hits, hit{position: loc[0], canonical: canonical})
		}
	}

	// "first" and "second" follow reading order in the raw text, not the
	// order the patterns happened to match in.
	sort.Slice(hits, func(i, j int) bool { return hits[i].position < hits[j].position })

	found := make([]string, 0, len(hits))
	for _, h := range hits {
		found = append(found, h.canonical)
	}

	switch {
	case len(found) >= 2:
		return &found[0], &found[1]
	case len(found) == 1:
		return nil, &found[0]
	default:
		return nil, nil
	}
}

func extractPackSize(text string) (slips *int, perSlip *int) {
	// "N x M TAB/CAP..." — N slips of M units
	if m := packSlipsFirstRegexp.FindStringSubmatch(text); m != nil {
		return atoiPtr(m[1]), atoiPtr(m[2])
	}
	// "N TAB/CAP... x M" — M slips of N units
	if m := packUnitsFirstRegexp.FindStringSubmatch(text); m != nil {
		return atoiPtr(m[2]), atoiPtr(m[1])
	}
	// lone "N TAB/CAP..." — units per slip known, slip count unknown
	if m := packLoneRegexp.FindStringSubmatch(text); m != nil {
		return nil, atoiPtr(m[1])
	}
	return nil, nil
}

/*
extractMrp scans lines containing a price keyword (Latin or Devanagari) and
takes the first currency-agnostic numeric amount, inferring currency from
adjacent markers. "Rs" on a Nepali label is NPR.
*/
func extractMrp(text string) (amount *float64, currency *string, mrpText *string) {
	for _, line := range splitNonEmptyLines(text) {
		if !mrpKeywordRegexp.MatchString(line) {
			continue
		}

		m := mrpAmountRegexp.FindString(line)
		if m == "" {
			continue
		}

		value, parseErr := strconv.ParseFloat(strings.ReplaceAll(m, ",", "."), 64)
		if parseErr != nil {
			continue
		}

		detected := ""
		switch {
		case currencyInrRegexp.MatchString(line):
			detected = "INR"
		case currencyNprRegexp.MatchString(line):
			detected = "NPR"
		}

		lineCopy := line
		amount = &value
		mrpText = &lineCopy
		if detected != "" {
			currency = &detected
		}
		return amount, currency, mrpText
	}
	return nil, nil, nil
}

func atoiPtr(s string) *int {
	value, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &value
}
