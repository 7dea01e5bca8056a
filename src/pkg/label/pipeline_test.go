package label

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRecognizer returns canned per-image OCR text in order.
type fakeRecognizer struct {
	texts []string
}

func (f *fakeRecognizer) RecognizeAll(_ context.Context, images []RawImage) []OcrResult {
	results := make([]OcrResult, len(images))
	for i := range images {
		if i < len(f.texts) {
			results[i] = OcrResult{Text: f.texts[i], Confidence: 90}
		}
	}
	return results
}

// fakeExtractor returns a fixed record (or nil) and counts invocations.
type fakeExtractor struct {
	record *CandidateRecord
	calls  int
}

func (f *fakeExtractor) Extract(_ context.Context, _ ExtractorInput) *CandidateRecord {
	f.calls++
	return f.record
}

func twoBlankImages() []RawImage {
	return []RawImage{
		{Data: []byte{1}, Filename: "front.jpg"},
		{Data: []byte{2}, Filename: "back.jpg"},
	}
}

func TestPipelineRegexOnlyFallback(t *testing.T) {
	// Both model tiers fail; the regex fallback must still produce the
	// batch, the expiry and the pack size from the OCR text alone.
	recognizer := &fakeRecognizer{texts: []string{
		"Cetamol 500 mg\nBatch No. FBLSL 2209\nExp Date: OCT 24\nMfg 2022-09-01",
		"10 Tablets x 10\nMRP Rs. 25.50",
	}}
	pipeline := &Pipeline{
		Recognizer: recognizer,
		Vision:     &fakeExtractor{record: nil},
		TextModel:  &fakeExtractor{record: nil},
	}

	merged := pipeline.Run(context.Background(), twoBlankImages())

	assert.Equal(t, SourceRegexOnly, merged.Source)

	require.NotNil(t, merged.BatchNumber)
	assert.Equal(t, "FBSL 2209", *merged.BatchNumber)

	require.NotNil(t, merged.ExpiryDate)
	assert.Equal(t, "2024-10-01", *merged.ExpiryDate)

	require.NotNil(t, merged.ManufacturingDate)
	assert.Equal(t, "2022-09-01", *merged.ManufacturingDate)

	require.NotNil(t, merged.TotalTablets)
	assert.Equal(t, 100, *merged.TotalTablets)

	require.NotNil(t, merged.MrpAmount)
	assert.Equal(t, 25.5, *merged.MrpAmount)

	assert.Equal(t, FormSolid, merged.DosageForm)
	assert.Nil(t, merged.Liquid)
}

func TestPipelineVisionWins(t *testing.T) {
	vision := &fakeExtractor{record: &CandidateRecord{Name: strPtr("Paracetamol 500mg")}}
	textModel := &fakeExtractor{record: &CandidateRecord{Name: strPtr("should not run")}}

	pipeline := &Pipeline{
		Recognizer: &fakeRecognizer{},
		Vision:     vision,
		TextModel:  textModel,
	}

	merged := pipeline.Run(context.Background(), twoBlankImages())

	assert.Equal(t, SourceVision, merged.Source)
	require.NotNil(t, merged.Name)
	assert.Equal(t, "Paracetamol 500mg", *merged.Name)
	assert.Equal(t, 1, vision.calls)
	assert.Equal(t, 0, textModel.calls, "text tier must not run when vision is sufficient")
}

func TestPipelineFallsThroughToTextModel(t *testing.T) {
	vision := &fakeExtractor{record: nil}
	textModel := &fakeExtractor{record: &CandidateRecord{Name: strPtr("Paracetamol 500mg")}}

	pipeline := &Pipeline{
		Recognizer: &fakeRecognizer{texts: []string{"some label text", "more text"}},
		Vision:     vision,
		TextModel:  textModel,
	}

	merged := pipeline.Run(context.Background(), twoBlankImages())

	assert.Equal(t, SourceOcrLLM, merged.Source)
	require.NotNil(t, merged.Name)
	assert.Equal(t, "Paracetamol 500mg", *merged.Name)
	assert.Equal(t, 1, vision.calls)
	assert.Equal(t, 1, textModel.calls)
}

func TestPipelineBatchOnlyVisionIsInsufficient(t *testing.T) {
	// A record carrying nothing but a batch number must not win the tier.
	vision := &fakeExtractor{record: &CandidateRecord{BatchNumber: strPtr("AB 1234")}}
	textModel := &fakeExtractor{record: &CandidateRecord{Name: strPtr("Paracetamol 500mg")}}

	pipeline := &Pipeline{
		Recognizer: &fakeRecognizer{},
		Vision:     vision,
		TextModel:  textModel,
	}

	merged := pipeline.Run(context.Background(), twoBlankImages())
	assert.Equal(t, SourceOcrLLM, merged.Source)
}

func TestPipelineSurvivesAllNilMembers(t *testing.T) {
	pipeline := &Pipeline{}

	merged := pipeline.Run(context.Background(), twoBlankImages())
	assert.Equal(t, SourceRegexOnly, merged.Source)
	assert.False(t, merged.HasSignal())
}

func TestPipelineLiquidLabel(t *testing.T) {
	recognizer := &fakeRecognizer{texts: []string{
		"Sinex Suspension\nEach 5 ml contains Oxymetazoline 25 mg",
		"Net Qty: 200 ml\nBatch No: QX 4455",
	}}
	pipeline := &Pipeline{Recognizer: recognizer}

	merged := pipeline.Run(context.Background(), twoBlankImages())

	assert.Equal(t, FormLiquid, merged.DosageForm)
	require.NotNil(t, merged.Liquid)

	require.NotNil(t, merged.Liquid.DoseMl)
	assert.Equal(t, 5.0, *merged.Liquid.DoseMl)

	require.NotNil(t, merged.Liquid.BottleVolumeMl)
	assert.Equal(t, 200.0, *merged.Liquid.BottleVolumeMl)

	require.NotNil(t, merged.BatchNumber)
	assert.Equal(t, "QX 4455", *merged.BatchNumber)
}

func TestPipelinePadsShortRecognizerOutput(t *testing.T) {
	// Recognizer returns fewer results than images; Run must not panic and
	// must still produce a record.
	short := &fakeRecognizer{texts: []string{"only one"}}
	pipeline := &Pipeline{Recognizer: &truncatingRecognizer{inner: short}}

	merged := pipeline.Run(context.Background(), twoBlankImages())
	assert.Equal(t, SourceRegexOnly, merged.Source)
}

// truncatingRecognizer drops the last result to simulate a misbehaving
// implementation.
type truncatingRecognizer struct {
	inner Recognizer
}

func (r *truncatingRecognizer) RecognizeAll(ctx context.Context, images []RawImage) []OcrResult {
	results := r.inner.RecognizeAll(ctx, images)
	if len(results) > 0 {
		return results[:len(results)-1]
	}
	return results
}
