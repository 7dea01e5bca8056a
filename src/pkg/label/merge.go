package label

import (
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

// minTrustedNameLength gates name selection: shorter strings are usually
// OCR fragments, not product names.
const minTrustedNameLength = 6

/*
Merge reconciles the model output (vision or text-model, whichever tier won)
against the regex fallback, field by field:

  - name: prefer whichever side has length >= 6, model winning ties
  - batch_number: weighted multi-source voting (ResolveBatchNumber)
  - dates: hinted label lines win over model output over regex output,
    everything normalized to the canonical calendar form
  - pack counts and MRP fields: model wins wherever non-nil
  - uses/ingredient/strength/dosage-form: model only (regex does not attempt
    free-text extraction)
  - total_tablets: computed only when both slip fields are present

model may be nil (both model tiers failed); regex never is.
*/
func Merge(model *CandidateRecord, regex *CandidateRecord, hints *HintBundle, perImageText []string, source string) MergedRecord {
	if model == nil {
		model = &CandidateRecord{}
	}
	if regex == nil {
		regex = &CandidateRecord{}
	}

	merged := MergedRecord{Source: source}

	merged.Name = mergeName(model.Name, regex.Name)

	merged.BatchNumber = ResolveBatchNumber(
		hints.Batch,
		perImageText,
		collectStrings(model.BatchNumber, regex.BatchNumber),
	)

	fullText := joinLines(hints.Lines)
	merged.ManufacturingDate = mergeDate(hints.Mfg, model.ManufacturingDate, regex.ManufacturingDate, fullText)
	merged.ExpiryDate = mergeDate(hints.Exp, model.ExpiryDate, regex.ExpiryDate, fullText)

	merged.SlipsCount = firstInt(model.SlipsCount, regex.SlipsCount)
	merged.TabletsPerSlip = firstInt(model.TabletsPerSlip, regex.TabletsPerSlip)
	merged.MrpAmount = firstFloat(model.MrpAmount, regex.MrpAmount)
	merged.MrpCurrency = firstString(model.MrpCurrency, regex.MrpCurrency)
	merged.MrpText = firstString(model.MrpText, regex.MrpText)

	// Free-text label fields come from the models only.
	merged.UsesOnLabel = model.UsesOnLabel
	merged.ActiveIngredientOnLabel = model.ActiveIngredientOnLabel
	merged.StrengthOnLabel = model.StrengthOnLabel
	merged.DosageFormOnLabel = model.DosageFormOnLabel

	// Never partially computed: both factors or nothing.
	if merged.SlipsCount != nil && merged.TabletsPerSlip != nil {
		total := *merged.SlipsCount * *merged.TabletsPerSlip
		merged.TotalTablets = &total
	}

	tl.Log(
		tl.Info1, palette.Green, "Merged record (source '%s', name '%s', batch '%s')",
		source, stringOrEmpty(merged.Name), stringOrEmpty(merged.BatchNumber),
	)

	return merged
}

func mergeName(modelName, regexName *string) *string {
	if modelName != nil && len(*modelName) >= minTrustedNameLength {
		return modelName
	}
	if regexName != nil && len(*regexName) >= minTrustedNameLength {
		return regexName
	}
	if modelName != nil && *modelName != "" {
		return modelName
	}
	return regexName
}

/*
mergeDate applies the date precedence: a date found in the hinted label
windows wins, then the model's value, then the regex fallback's. Every
candidate goes through NormalizeDate; a value that will not normalize is
skipped rather than passed through raw.
*/
func mergeDate(hintWindows []string, modelDate, regexDate *string, surrounding string) *string {
	if hinted := dateFromWindows(hintWindows, surrounding); hinted != nil {
		return hinted
	}
	for _, candidate := range []*string{modelDate, regexDate} {
		if candidate == nil || *candidate == "" {
			continue
		}
		if canonical, ok := NormalizeDate(*candidate, surrounding); ok {
			return &canonical
		}
	}
	return nil
}

/*
dateFromWindows scans hint windows in order and returns the first
normalizable date token. A window is "keyword line | next line"; the
segments are scanned separately, keyword line first, so a date printed on
the neighboring line cannot shadow one on the line that matched.
*/
func dateFromWindows(windows []string, surrounding string) *string {
	for _, window := range windows {
		for _, segment := range strings.Split(window, " | ") {
			if canonical := dateFromSegment(segment, surrounding); canonical != nil {
				return canonical
			}
		}
	}
	return nil
}

func dateFromSegment(segment string, surrounding string) *string {
	for _, pattern := range fullDateRegexps {
		for _, token := range pattern.FindAllString(segment, -1) {
			if canonical, ok := NormalizeDate(token, surrounding); ok {
				return &canonical
			}
		}
	}
	// Partial tokens like "OCT 24" hide inside the segment; the anchored
	// normalizer will not see them, so scan for them explicitly.
	for _, token := range partialDateRegexp.FindAllString(segment, -1) {
		if canonical, ok := NormalizeDate(token, surrounding); ok {
			return &canonical
		}
	}
	if canonical, ok := NormalizeDate(afterSeparator(segment), surrounding); ok {
		return &canonical
	}
	return nil
}

func afterSeparator(window string) string {
	for _, sep := range []string{":", "-", "|"} {
		if idx := strings.Index(window, sep); idx >= 0 {
			return strings.TrimSpace(window[idx+len(sep):])
		}
	}
	return window
}

// ----- Small merge helpers -----

func collectStrings(values ...*string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value != nil && *value != "" {
			out = append(out, *value)
		}
	}
	return out
}

func firstString(values ...*string) *string {
	for _, value := range values {
		if value != nil {
			return value
		}
	}
	return nil
}

func firstInt(values ...*int) *int {
	for _, value := range values {
		if value != nil {
			return value
		}
	}
	return nil
}

func firstFloat(values ...*float64) *float64 {
	for _, value := range values {
		if value != nil {
			return value
		}
	}
	return nil
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
