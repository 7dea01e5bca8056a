package label

import "strings"

/*
Heuristic enrichment: when the models left the free-text fields empty, fill
uses/active-ingredient from a small lookup table keyed by substring match on
the resolved name. These are heuristic enrichments, not verified medical
data — the caller is expected to present them as such.
*/

type ingredientInfo struct {
	ingredient string
	uses       string
}

var ingredientsByNameFragment = map[string]ingredientInfo{
	"CETAMOL":      {"Paracetamol", "Fever, mild to moderate pain"},
	"PARACETAMOL":  {"Paracetamol", "Fever, mild to moderate pain"},
	"IBUPROFEN":    {"Ibuprofen", "Pain, inflammation, fever"},
	"FLEXON":       {"Ibuprofen + Paracetamol", "Pain, inflammation, fever"},
	"NIMS":         {"Nimesulide", "Pain, fever"},
	"SINEX":        {"Oxymetazoline", "Nasal congestion"},
	"AMOXICILLIN":  {"Amoxicillin", "Bacterial infections"},
	"AZITHROMYCIN": {"Azithromycin", "Bacterial infections"},
	"CETIRIZINE":   {"Cetirizine", "Allergy, hay fever, urticaria"},
	"PANTOPRAZOLE": {"Pantoprazole", "Acid reflux, gastric ulcers"},
	"OMEPRAZOLE":   {"Omeprazole", "Acid reflux, gastric ulcers"},
	"METFORMIN":    {"Metformin", "Type 2 diabetes"},
	"ATORVASTATIN": {"Atorvastatin", "High cholesterol"},
	"SALBUTAMOL":   {"Salbutamol", "Asthma, bronchospasm"},
	"AMLODIPINE":   {"Amlodipine", "High blood pressure"},
	"LOSARTAN":     {"Losartan", "High blood pressure"},
	"DOMPERIDONE":  {"Domperidone", "Nausea, vomiting"},
}

/*
EnrichRecord fills UsesOnLabel and ActiveIngredientOnLabel when nil and the
resolved name matches a known ingredient fragment. Fields the extractors
populated are never overwritten.
*/
func EnrichRecord(record *MergedRecord) {
	if record == nil || record.Name == nil {
		return
	}
	if record.UsesOnLabel != nil && record.ActiveIngredientOnLabel != nil {
		return
	}

	upperName := strings.ToUpper(*record.Name)
	for fragment, info := range ingredientsByNameFragment {
		if !strings.Contains(upperName, fragment) {
			continue
		}
		if record.UsesOnLabel == nil {
			uses := info.uses
			record.UsesOnLabel = &uses
		}
		if record.ActiveIngredientOnLabel == nil {
			ingredient := info.ingredient
			record.ActiveIngredientOnLabel = &ingredient
		}
		return
	}
}
