package services

import (
	"regexp"
	"strconv"
)

var (
	labelledScorePattern = regexp.MustCompile(`(?i)relevance\s+score(?:\s*\([^)\n]*\))?\s*[:\-]?\s*(\d{1,3})\b`)
	firstNumberPattern   = regexp.MustCompile(`\d{1,3}`)
)

// ParseRelevanceScore pulls the 0-100 relevance score out of a review. It
// prefers a "Relevance Score: NN" line, where the label may carry a "(0-100)"
// range, and otherwise takes the first run of up to three digits. It returns
// nil when no usable score is present. Values above 100 count as no score.
func ParseRelevanceScore(text string) *int {
	var raw string
	if m := labelledScorePattern.FindStringSubmatch(text); m != nil {
		raw = m[1]
	} else {
		raw = firstNumberPattern.FindString(text)
	}
	if raw == "" {
		return nil
	}

	score, err := strconv.Atoi(raw)
	if err != nil || score > 100 {
		return nil
	}
	return &score
}
