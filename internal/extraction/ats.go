package extraction

import "github.com/jonathan/campus-match/internal/ingestion"

// ATS estimate breakpoints, in words
const (
	atsRisingEnd  = 300
	atsPlateauEnd = 800
)

// EstimateATSScore derives a 0-100 résumé quality proxy from word count alone.
// The score rises with length up to 800 words and falls off after it.
func EstimateATSScore(text string) int {
	words := ingestion.WordCount(text)

	var score int
	switch {
	case words < atsRisingEnd:
		score = words / 3
	case words <= atsPlateauEnd:
		score = 50 + (words-atsRisingEnd)/10
	default:
		// floor of 100 - (words-800)/5, so 801 words already drops to 99
		score = 100 - (words-atsPlateauEnd+4)/5
	}

	return clampScore(score)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
