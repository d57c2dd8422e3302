package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/models"
)

const (
	// minPhraseCount is the occurrence floor for a recurring phrase.
	minPhraseCount = 3
	// minOutcomeDecisions is the group-size floor for outcome-skew patterns.
	minOutcomeDecisions = 3
	// dominantOutcomeShare is the fraction the most frequent outcome must reach.
	dominantOutcomeShare  = 0.70
	outcomeSkewConfidence = 0.8
)

// phraseStopWords disqualify an n-gram when every word is on the list.
var phraseStopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "to": {}, "of": {}, "in": {}, "on": {},
	"and": {}, "or": {}, "for": {}, "my": {}, "i": {}, "it": {}, "is": {},
	"was": {}, "with": {}, "at": {}, "be": {},
}

// PatternDetector mines recurring phrases within a category and outcome
// skews across categories. It is a pure function of the decision set.
type PatternDetector struct {
	logger *zap.Logger
}

// NewPatternDetector creates a new pattern detector.
func NewPatternDetector(logger *zap.Logger) *PatternDetector {
	return &PatternDetector{logger: logger.Named("pattern-detector")}
}

// DetectPatterns returns pattern insights without mutating any decision.
// Running it twice on an unchanged decision set yields the same insights
// (modulo ids and timestamps): groups, phrases, and outcomes are all
// iterated in first-seen order.
func (p *PatternDetector) DetectPatterns(decisions []*models.Decision) []models.Insight {
	insights := p.phrasePatterns(decisions)
	return append(insights, p.outcomePatterns(decisions)...)
}

// phrasePatterns counts contiguous 2- and 3-word phrases per category and
// reports each phrase occurring at least minPhraseCount times.
func (p *PatternDetector) phrasePatterns(decisions []*models.Decision) []models.Insight {
	groups, order := groupByCategory(decisions)

	insights := make([]models.Insight, 0)
	for _, category := range order {
		counts := make(map[string]int)
		var phraseOrder []string

		for _, d := range groups[category] {
			for _, phrase := range phrases(d.Description) {
				if _, seen := counts[phrase]; !seen {
					phraseOrder = append(phraseOrder, phrase)
				}
				counts[phrase]++
			}
		}

		for _, phrase := range phraseOrder {
			count := counts[phrase]
			if count < minPhraseCount {
				continue
			}
			insights = append(insights, models.Insight{
				ID:         uuid.NewString(),
				Type:       models.InsightPatternDetected,
				Message:    fmt.Sprintf("Recurring theme in %s decisions: %q appears %d times", category, phrase, count),
				Confidence: math.Min(0.95, 0.7+0.05*float64(count)),
				Timestamp:  time.Now(),
				Metadata: models.InsightMetadata{
					Category: category,
					Phrase:   phrase,
					Count:    count,
				},
			})
		}
	}
	return insights
}

// outcomePatterns reports categories of 3+ decisions where one outcome
// accounts for at least 70% of them. Ties on outcome frequency resolve to
// the first-seen outcome.
func (p *PatternDetector) outcomePatterns(decisions []*models.Decision) []models.Insight {
	groups, order := groupByCategory(decisions)

	insights := make([]models.Insight, 0)
	for _, category := range order {
		group := groups[category]
		if len(group) < minOutcomeDecisions {
			continue
		}

		counts := make(map[models.Outcome]int)
		var outcomeOrder []models.Outcome
		for _, d := range group {
			if _, seen := counts[d.Outcome]; !seen {
				outcomeOrder = append(outcomeOrder, d.Outcome)
			}
			counts[d.Outcome]++
		}

		dominant := outcomeOrder[0]
		for _, outcome := range outcomeOrder[1:] {
			if counts[outcome] > counts[dominant] {
				dominant = outcome
			}
		}

		share := float64(counts[dominant]) / float64(len(group))
		if share < dominantOutcomeShare {
			continue
		}

		percentage := share * 100
		insights = append(insights, models.Insight{
			ID:         uuid.NewString(),
			Type:       models.InsightPatternDetected,
			Message:    fmt.Sprintf("%.0f%% of your %s decisions had a %s outcome", percentage, category, dominant),
			Confidence: outcomeSkewConfidence,
			Timestamp:  time.Now(),
			Metadata: models.InsightMetadata{
				Category:        category,
				DominantOutcome: dominant,
				Percentage:      percentage,
				TotalDecisions:  len(group),
			},
		})
	}
	return insights
}

func groupByCategory(decisions []*models.Decision) (map[models.Category][]*models.Decision, []models.Category) {
	groups := make(map[models.Category][]*models.Decision)
	var order []models.Category
	for _, d := range decisions {
		if _, seen := groups[d.Category]; !seen {
			order = append(order, d.Category)
		}
		groups[d.Category] = append(groups[d.Category], d)
	}
	return groups, order
}

// phrases yields every contiguous 2- and 3-word phrase of the description,
// case-folded and punctuation-trimmed, minus all-stop-word phrases.
func phrases(description string) []string {
	words := strings.Fields(strings.ToLower(description))
	for i, w := range words {
		words[i] = strings.Trim(w, ".,!?;:\"'()")
	}

	var result []string
	for _, n := range []int{2, 3} {
		for i := 0; i+n <= len(words); i++ {
			gram := words[i : i+n]
			if allStopWords(gram) {
				continue
			}
			result = append(result, strings.Join(gram, " "))
		}
	}
	return result
}

func allStopWords(words []string) bool {
	for _, w := range words {
		if _, ok := phraseStopWords[w]; !ok {
			return false
		}
	}
	return true
}
