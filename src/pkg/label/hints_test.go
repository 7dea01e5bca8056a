package label

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLabelText = `Cetamol 500 mg
Mfg Date: 2022-09-01
Exp Date: OCT 24
Batch No: FBSL 2209
MRP Rs. 25.50
Mfg Lic No: 123`

func TestBuildHintsFamilies(t *testing.T) {
	hints := BuildHints(sampleLabelText)
	require.NotNil(t, hints)

	require.NotEmpty(t, hints.Mfg)
	assert.Equal(t, "Mfg Date: 2022-09-01 | Exp Date: OCT 24", hints.Mfg[0])

	require.Len(t, hints.Exp, 1)
	assert.Equal(t, "Exp Date: OCT 24 | Batch No: FBSL 2209", hints.Exp[0])

	require.Len(t, hints.Batch, 1)
	assert.Equal(t, "Batch No: FBSL 2209 | MRP Rs. 25.50", hints.Batch[0])

	require.Len(t, hints.Price, 1)
	assert.Equal(t, "MRP Rs. 25.50 | Mfg Lic No: 123", hints.Price[0])

	require.Len(t, hints.License, 1)
	assert.Equal(t, "Mfg Lic No: 123", hints.License[0])

	assert.Len(t, hints.Lines, 6)
}

func TestBuildHintsDevanagariKeywords(t *testing.T) {
	hints := BuildHints("उत्पादन मिति 2022-09\nम्याद सकिने 2024-10\nमूल्य रु 30")
	assert.Len(t, hints.Mfg, 1)
	assert.Len(t, hints.Exp, 1)
	assert.Len(t, hints.Price, 1)
}

func TestBuildHintsLastLineWindowHasNoNeighbor(t *testing.T) {
	hints := BuildHints("some header\nBatch No: AB 1234")
	require.Len(t, hints.Batch, 1)
	assert.Equal(t, "Batch No: AB 1234", hints.Batch[0])
}

func TestBuildHintsDeduplicatesWindows(t *testing.T) {
	text := strings.Repeat("Batch No: AB 1234\nfiller line\n", 3)
	hints := BuildHints(text)
	assert.Len(t, hints.Batch, 1)
}

func TestBuildHintsCapsEachFamily(t *testing.T) {
	var builder strings.Builder
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&builder, "Batch No: AB %04d\n", 1000+i)
	}
	hints := BuildHints(builder.String())
	assert.Len(t, hints.Batch, maxHintsPerFamily)
}

func TestBuildHintsEmptyText(t *testing.T) {
	hints := BuildHints("")
	require.NotNil(t, hints)
	assert.Empty(t, hints.Batch)
	assert.Empty(t, hints.Lines)
}

func TestPromptBlockOmitsEmptyFamilies(t *testing.T) {
	hints := &HintBundle{Batch: []string{"Batch No: AB 1234"}}
	block := hints.PromptBlock()
	assert.Contains(t, block, "BATCH HINTS: Batch No: AB 1234")
	assert.NotContains(t, block, "MFG HINTS")

	var nilBundle *HintBundle
	assert.Equal(t, "", nilBundle.PromptBlock())
}
