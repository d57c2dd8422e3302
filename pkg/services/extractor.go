// Package services implements the decision support pipeline: extraction of
// decisions from journal entries, outcome inference, risk scoring, pattern
// mining, enrichment with similarity links and predicted consequences, and
// recommendation synthesis.
package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lorekeeper-ai/lorekeeper-engine/pkg/models"
)

const (
	// maxDescriptionLen bounds the extracted decision clause.
	maxDescriptionLen = 200
	// maxContextLen bounds the stored source-entry excerpt.
	maxContextLen = 500
	// maxAlternatives caps extracted alternatives per decision.
	maxAlternatives = 5
)

// decisionPhrases flag an entry as containing a decision. Matched
// case-insensitively by substring.
var decisionPhrases = []string{
	"i decided to",
	"i've decided to",
	"i have decided to",
	"decided to",
	"i chose to",
	"i'm going to",
	"i am going to",
	"i plan to",
	"i'm planning to",
	"i will",
	"i might",
	"thinking about",
	"considering",
	"debating whether",
	"should i",
}

// clausePatterns isolate the decision clause. Tried in priority order; the
// first match wins. The first-sentence fallback applies when none match.
var clausePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)i(?:'ve| have)? decided to (.+)`),
	regexp.MustCompile(`(?i)i chose to (.+)`),
	regexp.MustCompile(`(?i)i(?:'m| am) going to (.+)`),
	regexp.MustCompile(`(?i)i(?:'m planning| plan) to (.+)`),
	regexp.MustCompile(`(?i)i will (.+)`),
	regexp.MustCompile(`(?i)i might (.+)`),
	regexp.MustCompile(`(?i)(?:thinking about|considering) (.+)`),
	regexp.MustCompile(`(?i)debating whether (?:to )?(.+)`),
	regexp.MustCompile(`(?i)should i (.+)`),
}

// alternativePatterns pull out alternatives the author named alongside the
// chosen course of action.
var alternativePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)instead of ([^,.!?;]+)`),
	regexp.MustCompile(`(?i)rather than ([^,.!?;]+)`),
	regexp.MustCompile(`(?i)either ([^,.!?;]+?) or ([^,.!?;]+)`),
	regexp.MustCompile(`(?i)option (?:a|b|\d)[:\s]+([^,.!?;]+)`),
}

// categoryKeywords assigns a category to a description. Scanned in this
// fixed priority order; the first category with a keyword hit wins,
// regardless of how many keywords other categories would match.
var categoryKeywords = []struct {
	category models.Category
	keywords []string
}{
	{models.CategoryCareer, []string{"job", "work", "career", "promotion", "boss", "interview", "startup", "company", "resign", "quit", "hire"}},
	{models.CategoryRelationship, []string{"relationship", "partner", "boyfriend", "girlfriend", "marriage", "marry", "dating", "date", "breakup", "divorce"}},
	{models.CategoryHealth, []string{"health", "doctor", "exercise", "diet", "gym", "therapy", "medication", "sleep", "surgery"}},
	{models.CategoryFinancial, []string{"money", "buy", "invest", "save", "loan", "debt", "budget", "rent", "salary", "spend", "mortgage"}},
	{models.CategoryEducation, []string{"school", "study", "course", "degree", "learn", "class", "university", "college"}},
	{models.CategoryLocation, []string{"move", "moving", "relocate", "city", "apartment", "house", "abroad", "neighborhood"}},
	{models.CategoryFamily, []string{"family", "mom", "dad", "parents", "kids", "children", "brother", "sister"}},
	{models.CategorySocial, []string{"friend", "friends", "party", "social", "club", "community"}},
}

// Extractor scans journal entries for decision-indicating language and turns
// them into Decision records.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates a new extractor.
func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger.Named("extractor")}
}

// Extract produces zero or more decisions from the context's entries.
// Entries that contain no decision language, or whose clause cannot be
// isolated, are skipped with a debug log; Extract itself never fails.
func (e *Extractor) Extract(dc *models.DecisionContext) []*models.Decision {
	decisions := make([]*models.Decision, 0)
	if dc == nil {
		return decisions
	}

	for _, entry := range dc.Entries {
		decision, ok := e.extractFromEntry(entry)
		if !ok {
			continue
		}
		decision.UserID = dc.UserID
		decisions = append(decisions, decision)
	}

	e.logger.Debug("extraction complete",
		zap.Int("entries", len(dc.Entries)),
		zap.Int("decisions", len(decisions)))
	return decisions
}

func (e *Extractor) extractFromEntry(entry models.JournalEntry) (*models.Decision, bool) {
	content := strings.TrimSpace(entry.Content)
	if content == "" {
		return nil, false
	}

	lower := strings.ToLower(content)
	if !containsAny(lower, decisionPhrases) {
		return nil, false
	}

	description, ok := extractClause(content)
	if !ok {
		e.logger.Debug("no clause isolated, skipping entry", zap.String("entry_id", entry.ID))
		return nil, false
	}

	return &models.Decision{
		ID:                     decisionID(entry.ID),
		Description:            description,
		Category:               categorize(description),
		Timestamp:              entry.Date,
		Context:                truncateRunes(content, maxContextLen),
		AlternativesConsidered: extractAlternatives(content),
		Outcome:                models.OutcomeUnknown,
	}, true
}

// extractClause applies the clause patterns in order, falling back to the
// entry's first sentence when it exceeds 10 characters.
func extractClause(content string) (string, bool) {
	for _, pattern := range clausePatterns {
		if m := pattern.FindStringSubmatch(content); m != nil {
			return truncateRunes(strings.TrimSpace(m[1]), maxDescriptionLen), true
		}
	}

	sentence := firstSentence(content)
	if len(sentence) > 10 {
		return truncateRunes(sentence, maxDescriptionLen), true
	}
	return "", false
}

func firstSentence(content string) string {
	end := strings.IndexAny(content, ".!?")
	if end == -1 {
		return strings.TrimSpace(content)
	}
	return strings.TrimSpace(content[:end])
}

// categorize picks the first category whose keyword set intersects the
// description. Defaults to "other".
func categorize(description string) models.Category {
	lower := strings.ToLower(description)
	for _, group := range categoryKeywords {
		for _, keyword := range group.keywords {
			if strings.Contains(lower, keyword) {
				return group.category
			}
		}
	}
	return models.CategoryOther
}

// extractAlternatives collects connective-phrase captures, trimmed and
// bounded to 5-100 characters, at most five per decision.
func extractAlternatives(content string) []string {
	var alternatives []string
	for _, pattern := range alternativePatterns {
		for _, m := range pattern.FindAllStringSubmatch(content, -1) {
			for _, group := range m[1:] {
				alt := strings.TrimSpace(group)
				if len(alt) < 5 || len(alt) > 100 {
					continue
				}
				alternatives = append(alternatives, alt)
				if len(alternatives) == maxAlternatives {
					return alternatives
				}
			}
		}
	}
	return alternatives
}

// decisionID derives a deterministic-format id from the source entry and
// creation time, unique within a run.
func decisionID(entryID string) string {
	return fmt.Sprintf("decision_%s_%d", entryID, time.Now().UnixNano())
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
