// Package categorizer assigns spending categories to transactions using two
// tiers: a deterministic keyword table first, then a closed-vocabulary call
// to the language model, with a fixed fallback when both fail.
package categorizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"moneypal-go-be/ai"
)

// Categorization methods.
const (
	MethodKeyword  = "keyword"
	MethodAI       = "ai"
	MethodFallback = "fallback"
)

// Result is the outcome of a single categorization. Not persisted; the
// caller writes Category into the transaction record.
type Result struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Method     string  `json:"method"` // keyword | ai | fallback
}

// Categorizer combines the keyword tier with the remote model tier.
type Categorizer struct {
	rules     []KeywordRule
	vocab     map[string]string // lowercase label -> canonical label
	completer ai.Completer
	log       *logrus.Logger
}

// New builds a Categorizer over an ordered rule table. completer may be nil,
// in which case misses go straight to the fallback result.
func New(rules []KeywordRule, completer ai.Completer, log *logrus.Logger) *Categorizer {
	vocab := make(map[string]string, len(Categories))
	for _, c := range Categories {
		vocab[strings.ToLower(c)] = c
	}
	return &Categorizer{
		rules:     rules,
		vocab:     vocab,
		completer: completer,
		log:       log,
	}
}

// MatchKeyword runs the deterministic tier: case-insensitive substring
// containment, first match wins. No I/O.
func (c *Categorizer) MatchKeyword(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, rule := range c.rules {
		if strings.Contains(lower, rule.Keyword) {
			return rule.Category, true
		}
	}
	return "", false
}

// Categorize assigns a category to a transaction. It never returns an error:
// any failure in the model tier degrades to the fallback result so that
// categorization can never block a transaction insert.
func (c *Categorizer) Categorize(ctx context.Context, description, merchant string) Result {
	// Lowercase once; both the keyword tier and the model prompt see the
	// same normalized text.
	text := strings.ToLower(strings.TrimSpace(description + " " + merchant))

	if category, ok := c.MatchKeyword(text); ok {
		return Result{Category: category, Confidence: 0.95, Method: MethodKeyword}
	}

	if c.completer == nil {
		return Result{Category: FallbackCategory, Confidence: 0.5, Method: MethodFallback}
	}

	reply, err := c.completer.Complete(ctx, ai.Request{
		Prompt:      categorizePrompt(text),
		Temperature: 0.1,
	})
	if err != nil {
		c.log.WithError(err).WithField("text", text).Warn("AI categorization failed")
		return Result{Category: FallbackCategory, Confidence: 0.5, Method: MethodFallback}
	}

	label := strings.Trim(strings.TrimSpace(reply), `"'.`)
	canonical, ok := c.vocab[strings.ToLower(label)]
	if !ok {
		// The model stepped outside the closed vocabulary; treat it the
		// same as a failed call rather than persisting free text.
		c.log.WithField("label", label).Warn("AI returned category outside vocabulary")
		return Result{Category: FallbackCategory, Confidence: 0.5, Method: MethodFallback}
	}

	return Result{Category: canonical, Confidence: 0.85, Method: MethodAI}
}

func categorizePrompt(text string) string {
	return fmt.Sprintf(`Categorize this transaction: %q

Options: [%s]

OUTPUT ONLY THE CATEGORY NAME. NO EXTRA TEXT.`, text, strings.Join(Categories, ", "))
}
