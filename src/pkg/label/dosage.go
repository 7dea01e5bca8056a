package label

import (
	"regexp"
	"strconv"
	"strings"
)

/*
Dosage form inference and liquid metadata parsing.

All numeric/unit OCR noise correction happens in CleanPharmaText BEFORE any
pattern matching — the pattern library below assumes pre-cleaned text.
*/

const (
	maxDoseMl         = 20  // doses above this are bottle volumes, not doses
	minBottleVolumeMl = 30  // plausible bottle band
	maxBottleVolumeMl = 500
)

var (
	solidFormRegexp  = regexp.MustCompile(`(?i)\b(tablets?|caps?|capsules?|ointment|cream|gel)\b`)
	liquidFormRegexp = regexp.MustCompile(`(?i)\b(?:syrup|suspension|solution|drops|injection)\b|सिरप`)

	dosePerMlRegexp     = regexp.MustCompile(`(?i)(?:per|each|every)\s+(\d{1,2}(?:\.\d+)?)\s*ml`)
	doseContainsRegexp  = regexp.MustCompile(`(?i)(\d{1,2}(?:\.\d+)?)\s*ml\s+contains`)
	doseSlashRegexp     = regexp.MustCompile(`(?i)/\s*(\d{1,2}(?:\.\d+)?)\s*ml`)
	multiBottleRegexp   = regexp.MustCompile(`(?i)\b(\d{1,2})\s*[x×]\s*(\d{2,3})\s*ml\b`)
	anyVolumeRegexp     = regexp.MustCompile(`(?i)\b(\d{2,3})\s*ml\b`)
	volumeKeywordRegexp = regexp.MustCompile(`(?i)\b(net|qty|quantity|vol|volume|contents)\b|परिमाण`)
	concentrationRegexp = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*mg\s*(?:/|per\s+)\s*(5|10)\s*ml\b`)

	devanagariDigits   = strings.NewReplacer("०", "0", "१", "1", "२", "2", "३", "3", "४", "4", "५", "5", "६", "6", "७", "7", "८", "8", "९", "9")
	devanagariMlRegexp = regexp.MustCompile(`मि\.?\s?ली\.?|मि\.?\s?लि\.?|एमएल`)
	myUnitRegexp       = regexp.MustCompile(`(\d)\s*my\b`)
)

/*
CleanPharmaText repairs the numeric/unit OCR noise this parser depends on:
Devanagari digits to ASCII, Devanagari "ml" spellings to "ml", "5my" to
"5 mg", and letter-for-digit confusions inside numbers ("1O0" -> "100").
*/
func CleanPharmaText(text string) string {
	cleaned := devanagariDigits.Replace(text)
	cleaned = devanagariMlRegexp.ReplaceAllString(cleaned, "ml")
	cleaned = myUnitRegexp.ReplaceAllString(cleaned, "$1 mg")
	return repairDigitConfusions(cleaned)
}

/*
repairDigitConfusions maps letter-for-digit OCR misreads inside numbers:
"O" touching a digit becomes "0" ("1OO" -> "100"), "l"/"I" between two
digits becomes "1" ("1l5" -> "115"). A left-to-right pass so repaired
characters count as digits for their right neighbor.
*/
func repairDigitConfusions(text string) string {
	runes := []rune(text)
	isDigit := func(r rune) bool { return r >= '0' && r <= '9' }

	for i, r := range runes {
		prevDigit := i > 0 && isDigit(runes[i-1])
		nextDigit := i+1 < len(runes) && isDigit(runes[i+1])

		switch r {
		case 'O', 'o':
			if prevDigit || nextDigit {
				runes[i] = '0'
			}
		case 'l', 'I':
			if prevDigit && nextDigit {
				runes[i] = '1'
			}
		}
	}
	return string(runes)
}

/*
ParseDosage decides solid vs liquid from the combined label text and, for
liquids, extracts the dose quantity, bottle volume (disambiguated from the
dose by magnitude and keyword locality), multi-bottle pack shape, and
concentration normalized to mg per 5 ml.

An explicit label hint (the model's dosage_form_on_label) takes precedence
over keyword inference for the solid/liquid decision.
*/
func ParseDosage(text string, labelHint *string) (form string, liquid *LiquidDetails) {
	cleaned := CleanPharmaText(text)

	form = decideForm(cleaned, labelHint)
	if form != FormLiquid {
		return form, nil
	}

	liquid = &LiquidDetails{}

	dose := findDose(cleaned)
	liquid.DoseMl = dose

	bottles, volume := findBottleVolume(cleaned, dose)
	liquid.BottlesPerPack = bottles
	liquid.BottleVolumeMl = volume

	liquid.ConcentrationMgPer5Ml, liquid.ConcentrationLabel = findConcentration(cleaned)

	return form, liquid
}

func decideForm(cleaned string, labelHint *string) string {
	if labelHint != nil && *labelHint != "" {
		hint := CleanPharmaText(*labelHint)
		if liquidFormRegexp.MatchString(hint) {
			return FormLiquid
		}
		if solidFormRegexp.MatchString(hint) {
			return FormSolid
		}
	}

	if liquidFormRegexp.MatchString(cleaned) {
		return FormLiquid
	}
	return FormSolid
}

/*
findDose locates the per-dose quantity ("per 5 ml", "each 10 ml contains",
"/5ml"). Doses above maxDoseMl are rejected — a number that size is a bottle.
*/
func findDose(cleaned string) *float64 {
	for _, pattern := range []*regexp.Regexp{dosePerMlRegexp, doseContainsRegexp, doseSlashRegexp} {
		if m := pattern.FindStringSubmatch(cleaned); m != nil {
			value, err := strconv.ParseFloat(m[1], 64)
			if err == nil && value > 0 && value <= maxDoseMl {
				return &value
			}
		}
	}
	return nil
}

/*
findBottleVolume resolves the bottle volume, deliberately disambiguated from
the dose:

  - an "N x M ml" multi-bottle pattern wins outright
  - otherwise, ml numbers on lines carrying a quantity keyword
    ("Net/Qty/Volume" or Devanagari) are preferred
  - otherwise any ml number in the plausible 30–500 band that is not the dose
*/
func findBottleVolume(cleaned string, dose *float64) (bottles *int, volume *float64) {
	if m := multiBottleRegexp.FindStringSubmatch(cleaned); m != nil {
		count, _ := strconv.Atoi(m[1])
		ml, _ := strconv.ParseFloat(m[2], 64)
		if plausibleVolume(ml, dose) {
			return &count, &ml
		}
	}

	for _, line := range splitNonEmptyLines(cleaned) {
		if !volumeKeywordRegexp.MatchString(line) {
			continue
		}
		if ml, ok := firstPlausibleVolume(line, dose); ok {
			return nil, &ml
		}
	}

	if ml, ok := firstPlausibleVolume(cleaned, dose); ok {
		return nil, &ml
	}

	return nil, nil
}

func firstPlausibleVolume(text string, dose *float64) (float64, bool) {
	for _, m := range anyVolumeRegexp.FindAllStringSubmatch(text, -1) {
		ml, err := strconv.ParseFloat(m[1], 64)
		if err == nil && plausibleVolume(ml, dose) {
			return ml, true
		}
	}
	return 0, false
}

func plausibleVolume(ml float64, dose *float64) bool {
	if ml < minBottleVolumeMl || ml > maxBottleVolumeMl {
		return false
	}
	return dose == nil || ml != *dose
}

/*
findConcentration normalizes strength to mg-per-5ml; a mg/10ml reading is
halved. The raw matched text is kept as the concentration label.
*/
func findConcentration(cleaned string) (mgPer5Ml *float64, labelText *string) {
	m := concentrationRegexp.FindStringSubmatch(cleaned)
	if m == nil {
		return nil, nil
	}

	mg, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil, nil
	}
	if m[2] == "10" {
		mg = mg / 2
	}

	matched := strings.TrimSpace(concentrationRegexp.FindString(cleaned))
	return &mg, &matched
}
