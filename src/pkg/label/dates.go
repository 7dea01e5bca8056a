package label

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

/*
Date normalization. Canonical output is "YYYY-MM-DD".

Accepted inputs:
  - already-canonical dates (returned unchanged, so normalization is idempotent)
  - full numeric dates in "/", "-" or "." separators, year-first or day-first
    (disambiguated by field widths)
  - month-name + day + year ("JAN 5 2024", "5 JAN 2024", "January 5, 2024")
  - month-name + year only, completed to day 01 ("OCT 2024")
  - partial month + two-digit tokens ("OCT 24"), completed with a year sniffed
    from the surrounding OCR text or else the current year

Two-digit years follow the >=70 -> 19xx else 20xx rule.
*/

var (
	numericDateRegexp  = regexp.MustCompile(`^(\d{1,4})[/.\-](\d{1,2})[/.\-](\d{1,4})$`)
	monthDayYearRegexp = regexp.MustCompile(`^([A-Za-z]{3,9})\.?\s+(\d{1,2})[,\s]+(\d{2,4})$`)
	dayMonthYearRegexp = regexp.MustCompile(`^(\d{1,2})[\s\-]+([A-Za-z]{3,9})\.?[\s\-]+(\d{2,4})$`)
	monthYearRegexp    = regexp.MustCompile(`^([A-Za-z]{3,9})\.?[\s\-]*(\d{2,4})$`)
	// partial month + two-digit tokens embedded in longer lines ("Exp: OCT 24")
	partialDateRegexp = regexp.MustCompile(`(?i)\b([A-Za-z]{3,9})\.?[\s\-]+(\d{2})\b`)
	sniffYearRegexp   = regexp.MustCompile(`20\d{2}`)
)

var monthsByPrefix = map[string]int{
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
}

/*
NormalizeDate converts a heterogeneous date token to the canonical
"YYYY-MM-DD" form. surrounding is the OCR text the token came from; it is
only consulted to complete partial month+year tokens. Returns ok=false when
the token is not recognizably a date.
*/
func NormalizeDate(token string, surrounding string) (canonical string, ok bool) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return "", false
	}

	if m := numericDateRegexp.FindStringSubmatch(trimmed); m != nil {
		return normalizeNumericDate(m[1], m[2], m[3])
	}

	if m := monthDayYearRegexp.FindStringSubmatch(trimmed); m != nil {
		month, found := monthNumber(m[1])
		if !found {
			return "", false
		}
		day, _ := strconv.Atoi(m[2])
		year := expandYear(m[3])
		return formatDate(year, month, day)
	}

	if m := dayMonthYearRegexp.FindStringSubmatch(trimmed); m != nil {
		month, found := monthNumber(m[2])
		if !found {
			return "", false
		}
		day, _ := strconv.Atoi(m[1])
		year := expandYear(m[3])
		return formatDate(year, month, day)
	}

	if m := monthYearRegexp.FindStringSubmatch(trimmed); m != nil {
		month, found := monthNumber(m[1])
		if !found {
			return "", false
		}
		year := completePartialYear(m[2], surrounding)
		return formatDate(year, month, 1)
	}

	return "", false
}

/*
normalizeNumericDate disambiguates a three-field numeric date by widths:
a 4-digit first field means year-first, otherwise the date is day-first.
*/
func normalizeNumericDate(first, second, third string) (canonical string, ok bool) {
	a, _ := strconv.Atoi(first)
	b, _ := strconv.Atoi(second)
	c, _ := strconv.Atoi(third)

	if len(first) == 4 {
		// YYYY-M-D
		return formatDate(a, b, c)
	}
	// D-M-Y(YYYY or YY)
	return formatDate(expandYear(third), b, a)
}

/*
completePartialYear resolves the trailing token of "OCT 24"-style dates.
A 4-digit token is the year itself. For a 2-digit token, a "20xx" year
sniffed from the surrounding OCR text wins when its last two digits agree;
otherwise the two-digit rule applies. Anything else falls back to the
sniffed year or the current year.
*/
func completePartialYear(yearToken string, surrounding string) int {
	if len(yearToken) == 4 {
		year, _ := strconv.Atoi(yearToken)
		return year
	}

	sniffed := 0
	if m := sniffYearRegexp.FindString(surrounding); m != "" {
		sniffed, _ = strconv.Atoi(m)
	}

	if len(yearToken) == 2 {
		twoDigit, _ := strconv.Atoi(yearToken)
		if sniffed != 0 && sniffed%100 == twoDigit {
			return sniffed
		}
		return expandYear(yearToken)
	}

	if sniffed != 0 {
		return sniffed
	}
	return time.Now().Year()
}

// expandYear applies the two-digit year rule; 4-digit years pass through.
func expandYear(yearToken string) int {
	year, _ := strconv.Atoi(yearToken)
	if len(yearToken) > 2 {
		return year
	}
	if year >= 70 {
		return 1900 + year
	}
	return 2000 + year
}

func monthNumber(name string) (month int, found bool) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if len(upper) < 3 {
		return 0, false
	}
	month, found = monthsByPrefix[upper[:3]]
	if !found {
		return 0, false
	}
	// Reject non-month words that happen to share a prefix ("MARKET").
	if len(upper) > 3 && !strings.HasPrefix(strings.ToUpper(time.Month(month).String()), upper) {
		return 0, false
	}
	return month, true
}

func formatDate(year, month, day int) (canonical string, ok bool) {
	if year < 1900 || year > 2199 || month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

/*
SniffYear returns the first plausible "20xx" year found in the text, or "".
*/
func SniffYear(text string) string {
	return sniffYearRegexp.FindString(text)
}
