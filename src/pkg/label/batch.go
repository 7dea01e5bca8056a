package label

import (
	"regexp"
	"sort"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

/*
Batch code normalization and multi-source voting.

Canonical batch shape is LETTERS(2-5) SPACE DIGITS(4-6), e.g. "FBSL 2209".
OCR habitually misreads letters as digits inside the letter run (O->0, I->1,
S->5) and injects a stray "L" ligature between "B" and "SL"; both are
repaired before the shape gate.
*/

var (
	batchShapeRegexp     = regexp.MustCompile(`^([A-Z]{2,5})\s?(\d{4,6})$`)
	batchCandidateRegexp = regexp.MustCompile(`\b([A-Za-z]{2,5})[\s\-]?(\d{4,6})\b`)
	nonBatchCharRegexp   = regexp.MustCompile(`[^A-Z0-9 ]+`)
	multiSpaceRegexp     = regexp.MustCompile(`\s+`)
)

/*
NormalizeBatchToken canonicalizes a noisy OCR batch token into the
"LETTERS DIGITS" shape:

  - uppercase, strip everything outside [A-Z0-9 ], collapse whitespace
  - repair digit/letter confusions only inside runs of letters
    (a digit amid letters is almost always an OCR letter misread)
  - fix the "B L (SL)" ligature bug ("FBLSL" -> "FBSL")
  - require LETTERS(2-5) SPACE DIGITS(4-6); anything else is rejected

Idempotent: normalizing an accepted output returns it unchanged.
*/
func NormalizeBatchToken(raw string) (token string, ok bool) {
	cleaned := strings.ToUpper(strings.TrimSpace(raw))
	cleaned = nonBatchCharRegexp.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(multiSpaceRegexp.ReplaceAllString(cleaned, " "))
	if cleaned == "" {
		return "", false
	}

	cleaned = repairLetterRuns(cleaned)
	cleaned = strings.ReplaceAll(cleaned, "BLSL", "BSL")
	cleaned = strings.ReplaceAll(cleaned, "BL SL", "B SL")

	m := batchShapeRegexp.FindStringSubmatch(cleaned)
	if m == nil {
		return "", false
	}

	return m[1] + " " + m[2], true
}

/*
repairLetterRuns maps the classic digit-for-letter OCR confusions, but only
when the digit sits between two letters: "F0SL" -> "FOSL", "F1X" -> "FIX",
"A5B" -> "ASB". Digits at run boundaries are left alone — they usually open
the numeric part of the code.
*/
func repairLetterRuns(s string) string {
	runes := []rune(s)
	for i := 1; i < len(runes)-1; i++ {
		if !isUpperLetter(runes[i-1]) || !isUpperLetter(runes[i+1]) {
			continue
		}
		switch runes[i] {
		case '0':
			runes[i] = 'O'
		case '1':
			runes[i] = 'I'
		case '5':
			runes[i] = 'S'
		}
	}
	return string(runes)
}

func isUpperLetter(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

/*
ResolveBatchNumber reconciles the batch number across every available source
via weighted voting:

  - candidates found in batch/lot keyword windows vote with weight 2
    (locality beats frequency)
  - candidates swept from the raw per-image OCR text vote with weight 1
    per occurrence
  - the model's and regex extractor's own guesses vote with weight 1 each

Every candidate is normalized before tallying; candidates that fail
normalization do not vote. Highest cumulative weight wins; ties break to the
shortest normalized token, then lexicographically so the outcome is
deterministic for a given multiset of votes. Returns nil when nothing
survives normalization.
*/
func ResolveBatchNumber(hintWindows []string, perImageText []string, guesses []string) *string {
	tally := map[string]int{}

	addVotes := func(text string, weight int) {
		for _, m := range batchCandidateRegexp.FindAllStringSubmatch(text, -1) {
			if token, ok := NormalizeBatchToken(m[1] + " " + m[2]); ok {
				tally[token] += weight
			}
		}
	}

	for _, window := range hintWindows {
		addVotes(window, 2)
	}
	for _, text := range perImageText {
		addVotes(text, 1)
	}
	for _, guess := range guesses {
		if token, ok := NormalizeBatchToken(guess); ok {
			tally[token] += 1
		}
	}

	if len(tally) == 0 {
		return nil
	}

	votes := make([]BatchVote, 0, len(tally))
	for token, score := range tally {
		votes = append(votes, BatchVote{Token: token, Score: score})
	}
	sort.Slice(votes, func(i, j int) bool {
		if votes[i].Score != votes[j].Score {
			return votes[i].Score > votes[j].Score
		}
		if len(votes[i].Token) != len(votes[j].Token) {
			return len(votes[i].Token) < len(votes[j].Token)
		}
		return votes[i].Token < votes[j].Token
	})

	winner := votes[0].Token
	tl.Log(
		tl.Detailed, palette.CyanDim, "Batch vote won by '%s' with score %v (of %v candidates)",
		winner, votes[0].Score, len(votes),
	)

	return &winner
}
