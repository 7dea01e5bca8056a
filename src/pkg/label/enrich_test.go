package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrichRecordFillsKnownIngredient(t *testing.T) {
	record := &MergedRecord{}
	record.Name = strPtr("Cetamol 500 mg")

	EnrichRecord(record)

	require.NotNil(t, record.ActiveIngredientOnLabel)
	assert.Equal(t, "Paracetamol", *record.ActiveIngredientOnLabel)
	require.NotNil(t, record.UsesOnLabel)
	assert.Equal(t, "Fever, mild to moderate pain", *record.UsesOnLabel)
}

func TestEnrichRecordNeverOverwritesExtractedFields(t *testing.T) {
	record := &MergedRecord{}
	record.Name = strPtr("Cetamol 500 mg")
	record.UsesOnLabel = strPtr("as printed on the label")
	record.ActiveIngredientOnLabel = strPtr("Paracetamol IP")

	EnrichRecord(record)

	assert.Equal(t, "as printed on the label", *record.UsesOnLabel)
	assert.Equal(t, "Paracetamol IP", *record.ActiveIngredientOnLabel)
}

func TestEnrichRecordUnknownNameLeavesFieldsNil(t *testing.T) {
	record := &MergedRecord{}
	record.Name = strPtr("Mystery Tonic")

	EnrichRecord(record)

	assert.Nil(t, record.UsesOnLabel)
	assert.Nil(t, record.ActiveIngredientOnLabel)
}

func TestEnrichRecordNilSafe(t *testing.T) {
	EnrichRecord(nil)
	EnrichRecord(&MergedRecord{})
}

func TestHasSignal(t *testing.T) {
	var nilRecord *CandidateRecord
	assert.False(t, nilRecord.HasSignal())

	assert.False(t, (&CandidateRecord{}).HasSignal())

	batchOnly := &CandidateRecord{BatchNumber: strPtr("AB 1234")}
	assert.False(t, batchOnly.HasSignal(), "batch alone is not signal")

	emptyName := &CandidateRecord{Name: strPtr("")}
	assert.False(t, emptyName.HasSignal())

	named := &CandidateRecord{Name: strPtr("Cetamol")}
	assert.True(t, named.HasSignal())

	packOnly := &CandidateRecord{TabletsPerSlip: intPtr(10)}
	assert.True(t, packOnly.HasSignal())
}
