package llm

/*
Shared JSON schema + prompt contract for both model tiers. Returned values
must be visibly present on the label; the models are explicitly told never
to infer. Absent values are null, never omitted and never "".
*/

func nullableString(description string) map[string]any {
	return map[string]any{
		"type":        []string{"string", "null"},
		"description": description,
	}
}

func nullableInteger(description string) map[string]any {
	return map[string]any{
		"type":        []string{"integer", "null"},
		"description": description,
	}
}

func nullableNumber(description string) map[string]any {
	return map[string]any{
		"type":        []string{"number", "null"},
		"description": description,
	}
}

// CandidateSchemaProperties mirrors label.CandidateRecord field-for-field.
func CandidateSchemaProperties() map[string]any {
	return map[string]any{
		"name":               nullableString("Product/brand name exactly as printed on the package, or null."),
		"manufacturing_date": nullableString("Manufacture date as printed (any format), or null."),
		"batch_number":       nullableString("Batch/lot code normalized to LETTERS SPACE DIGITS (e.g. 'FBSL 2209'), or null."),
		"expiry_date":        nullableString("Expiry date as printed (any format), or null."),
		"slips_count":        nullableInteger("Number of blister slips/strips in the pack, or null."),
		"tablets_per_slip":   nullableInteger("Tablets/capsules per slip, or null."),
		"mrp_amount":         nullableNumber("Numeric MRP amount, or null."),
		"mrp_currency":       nullableString("Currency of the MRP ('NPR', 'INR'), or null."),
		"mrp_text":           nullableString("The raw MRP line as printed, or null."),
		"uses_on_label":      nullableString("Uses/indications text if printed on the label, or null."),
		"active_ingredient_on_label": nullableString("Active ingredient(s) as printed, or null."),
		"strength_on_label":          nullableString("Strength as printed (e.g. '500 mg'), or null."),
		"dosage_form_on_label":       nullableString("Dosage form as printed (tablet, capsule, syrup, suspension...), or null."),
	}
}

const extractionInstructions = `
You are reading photographs of a single medicine package sold in Nepal
(labels mix English and Nepali/Devanagari print).

Rules:
- Return ONLY values that are visibly present on the label. NEVER infer,
  guess, or complete from general medical knowledge.
- A field you cannot see is null. Never return "" for "not found".
- Normalize any visible batch/lot code to the shape LETTERS SPACE DIGITS
  and make it match ^[A-Z]{2,5} \d{4,6}$.
- OCR sometimes injects a stray "L" between "B" and "SL" in batch codes:
  read "FBLSL" as "FBSL".
- Dates may be copied as printed; do not reformat them.
- The MRP is the maximum retail price printed on the package; keep the raw
  line in mrp_text.
`

const extractionDeveloperMessage = `
Return only a single JSON object matching the provided schema.
Do not include any additional commentary or explanation outside the JSON.
Use null for every field that is not visibly present on the package.
`
