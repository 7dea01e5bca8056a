package label

// RawImage is one photo of the medicine package. Ephemeral, owned by the
// caller; the pipeline never persists it.
type RawImage struct {
	Data        []byte
	Filename    string
	ContentType string
}

// OcrResult is the text + confidence (0..100) for one RawImage.
type OcrResult struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

/*
CandidateRecord is the schema-shaped partial output of each extractor
(vision, text-model, regex). Every field is a pointer so "not found" (nil)
stays distinguishable from "found and empty" ("") — merge precedence depends
on that distinction.
*/
type CandidateRecord struct {
	Name                    *string  `json:"name"`
	ManufacturingDate       *string  `json:"manufacturing_date"`
	BatchNumber             *string  `json:"batch_number"`
	ExpiryDate              *string  `json:"expiry_date"`
	SlipsCount              *int     `json:"slips_count"`
	TabletsPerSlip          *int     `json:"tablets_per_slip"`
	MrpAmount               *float64 `json:"mrp_amount"`
	MrpCurrency             *string  `json:"mrp_currency"`
	MrpText                 *string  `json:"mrp_text"`
	UsesOnLabel             *string  `json:"uses_on_label"`
	ActiveIngredientOnLabel *string  `json:"active_ingredient_on_label"`
	StrengthOnLabel         *string  `json:"strength_on_label"`
	DosageFormOnLabel       *string  `json:"dosage_form_on_label"`
}

/*
HasSignal reports whether the record carries at least one non-nil, non-empty
field besides the batch number. A batch code alone can come from the model's
batch correction and says nothing about the rest of the label, so it does not
count toward "this extractor produced something useful".
*/
func (r *CandidateRecord) HasSignal() bool {
	if r == nil {
		return false
	}
	for _, value := range []*string{
		r.Name, r.ManufacturingDate, r.ExpiryDate,
		r.MrpCurrency, r.MrpText,
		r.UsesOnLabel, r.ActiveIngredientOnLabel, r.StrengthOnLabel, r.DosageFormOnLabel,
	} {
		if value != nil && *value != "" {
			return true
		}
	}
	if r.SlipsCount != nil || r.TabletsPerSlip != nil || r.MrpAmount != nil {
		return true
	}
	return false
}

// Provenance values for MergedRecord.Source.
const (
	SourceVision    = "vision"
	SourceOcrLLM    = "ocr_llm"
	SourceRegexOnly = "regex-only"
)

// Dosage form decisions.
const (
	FormSolid  = "solid"
	FormLiquid = "liquid"
)

// LiquidDetails is the liquid-only metadata block of a MergedRecord.
type LiquidDetails struct {
	BottleVolumeMl        *float64 `json:"bottle_volume_ml"`
	BottlesPerPack        *int     `json:"bottles_per_pack"`
	DoseMl                *float64 `json:"dose_ml"`
	ConcentrationMgPer5Ml *float64 `json:"concentration_mg_per_5ml"`
	ConcentrationLabel    *string  `json:"concentration_label"`
}

/*
MergedRecord is the final reconciled output of one pipeline run: the
candidate fields after field-by-field voting, plus computed totals, the
dosage-form decision with optional liquid metadata, and the provenance tag.
*/
type MergedRecord struct {
	CandidateRecord
	TotalTablets *int           `json:"total_tablets"`
	DosageForm   string         `json:"dosage_form"`
	Liquid       *LiquidDetails `json:"liquid,omitempty"`
	Source       string         `json:"_source"`
}

// BatchVote is the ephemeral tally used inside batch-number reconciliation.
type BatchVote struct {
	Token string
	Score int
}
