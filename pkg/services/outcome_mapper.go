package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/models"
)

const (
	// outcomeWindow bounds how far past a decision outcome language counts.
	outcomeWindow = 90 * 24 * time.Hour
	// maxOutcomeEntries bounds how many later entries are examined per decision.
	maxOutcomeEntries = 10
	// outcomeConfidence is the confidence of decision_detected insights.
	outcomeConfidence = 0.8
)

var positivePhrases = []string{
	"worked out",
	"glad i",
	"good decision",
	"great decision",
	"best decision",
	"successful",
	"happy with",
	"no regrets",
	"paid off",
	"went well",
}

var negativePhrases = []string{
	"regret",
	"mistake",
	"should have",
	"shouldn't have",
	"went wrong",
	"bad decision",
	"worst decision",
	"backfired",
	"disappointed",
}

var neutralPhrases = []string{
	"okay",
	"fine",
	"no change",
	"nothing changed",
	"about the same",
}

// OutcomeMapper infers an outcome for each decision from sentiment language
// in later entries.
type OutcomeMapper struct {
	logger *zap.Logger
}

// NewOutcomeMapper creates a new outcome mapper.
func NewOutcomeMapper(logger *zap.Logger) *OutcomeMapper {
	return &OutcomeMapper{logger: logger.Named("outcome-mapper")}
}

// MapOutcomes assigns an outcome to each decision from entries within the
// 90-day window, examining at most the 10 closest later entries. Decisions
// whose outcome resolves to something other than unknown are mutated and
// yield a decision_detected insight.
func (m *OutcomeMapper) MapOutcomes(decisions []*models.Decision, dc *models.DecisionContext) []models.Insight {
	insights := make([]models.Insight, 0)
	if dc == nil {
		return insights
	}

	for _, d := range decisions {
		outcome := m.inferOutcome(d, dc.Entries)
		if outcome == models.OutcomeUnknown {
			continue
		}
		d.Outcome = outcome

		insights = append(insights, models.Insight{
			ID:         uuid.NewString(),
			Type:       models.InsightDecisionDetected,
			Message:    fmt.Sprintf("Outcome for decision %q appears %s", truncateRunes(d.Description, 50), outcome),
			Confidence: outcomeConfidence,
			Timestamp:  time.Now(),
			DecisionID: d.ID,
			Metadata:   models.InsightMetadata{Outcome: outcome},
		})
	}
	return insights
}

// inferOutcome counts positive, negative, and neutral phrase hits across the
// qualifying later entries, then applies the decision rule. Ties between
// nonzero positive and negative counts resolve to unknown.
func (m *OutcomeMapper) inferOutcome(d *models.Decision, entries []models.JournalEntry) models.Outcome {
	later := make([]models.JournalEntry, 0)
	for _, entry := range entries {
		if entry.Date.After(d.Timestamp) {
			later = append(later, entry)
		}
	}
	// Sort by ascending distance from the decision date so the window cutoff
	// below cannot exit before closer entries have been seen.
	sort.SliceStable(later, func(i, j int) bool {
		return later[i].Date.Sub(d.Timestamp) < later[j].Date.Sub(d.Timestamp)
	})

	var positive, negative, neutral, examined int
	for _, entry := range later {
		if entry.Date.Sub(d.Timestamp) > outcomeWindow {
			break
		}
		lower := strings.ToLower(entry.Content)
		positive += countHits(lower, positivePhrases)
		negative += countHits(lower, negativePhrases)
		neutral += countHits(lower, neutralPhrases)

		examined++
		if examined == maxOutcomeEntries {
			break
		}
	}

	switch {
	case positive > negative && positive > 0:
		return models.OutcomePositive
	case negative > positive && negative > 0:
		return models.OutcomeNegative
	case neutral > 0 && positive == 0 && negative == 0:
		return models.OutcomeNeutral
	default:
		return models.OutcomeUnknown
	}
}

func countHits(haystack string, phrases []string) int {
	hits := 0
	for _, phrase := range phrases {
		if strings.Contains(haystack, phrase) {
			hits++
		}
	}
	return hits
}
