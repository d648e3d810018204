package categorizer

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneypal-go-be/ai"
)

// fakeCompleter records calls and returns a canned reply or error.
type fakeCompleter struct {
	reply string
	err   error
	calls int
	last  ai.Request
}

func (f *fakeCompleter) Complete(_ context.Context, req ai.Request) (string, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestCategorizer(completer ai.Completer) *Categorizer {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return New(DefaultKeywords(), completer, log)
}

func TestCategorize_KeywordHit(t *testing.T) {
	fake := &fakeCompleter{reply: "Shopping"}
	c := newTestCategorizer(fake)

	res := c.Categorize(context.Background(), "Lunch on swiggy", "")

	assert.Equal(t, "Food & Dining", res.Category)
	assert.Equal(t, 0.95, res.Confidence)
	assert.Equal(t, MethodKeyword, res.Method)
	assert.Equal(t, 0, fake.calls, "keyword hit must not invoke the model")
}

func TestCategorize_KeywordMatchesMerchant(t *testing.T) {
	c := newTestCategorizer(&fakeCompleter{err: ai.ErrUnavailable})

	res := c.Categorize(context.Background(), "monthly subscription", "Netflix")

	assert.Equal(t, "Entertainment", res.Category)
	assert.Equal(t, MethodKeyword, res.Method)
}

func TestCategorize_Idempotent(t *testing.T) {
	c := newTestCategorizer(&fakeCompleter{})

	first := c.Categorize(context.Background(), "UBER ride to office", "")
	second := c.Categorize(context.Background(), "UBER ride to office", "")

	assert.Equal(t, first, second)
}

func TestCategorize_FallbackOnFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"rate limited", ai.ErrRateLimited},
		{"unavailable", ai.ErrUnavailable},
		{"malformed", ai.ErrMalformed},
		{"other", errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCompleter{err: tt.err}
			c := newTestCategorizer(fake)

			res := c.Categorize(context.Background(), "mystery merchant", "")

			assert.Equal(t, FallbackCategory, res.Category)
			assert.Equal(t, 0.5, res.Confidence)
			assert.Equal(t, MethodFallback, res.Method)
			assert.Equal(t, 1, fake.calls)
		})
	}
}

func TestCategorize_AISuccess(t *testing.T) {
	fake := &fakeCompleter{reply: "Groceries"}
	c := newTestCategorizer(fake)

	res := c.Categorize(context.Background(), "corner store", "")

	assert.Equal(t, "Groceries", res.Category)
	assert.Equal(t, 0.85, res.Confidence)
	assert.Equal(t, MethodAI, res.Method)
}

func TestCategorize_PromptTextLowercased(t *testing.T) {
	fake := &fakeCompleter{reply: "Groceries"}
	c := newTestCategorizer(fake)

	c.Categorize(context.Background(), "CORNER Store", "Mystery Mart")

	require.Equal(t, 1, fake.calls)
	assert.Contains(t, fake.last.Prompt, `"corner store mystery mart"`)
	assert.NotContains(t, fake.last.Prompt, "CORNER")
}

func TestCategorize_AILabelNormalized(t *testing.T) {
	fake := &fakeCompleter{reply: "  \"groceries\" "}
	c := newTestCategorizer(fake)

	res := c.Categorize(context.Background(), "corner store", "")

	require.Equal(t, MethodAI, res.Method)
	assert.Equal(t, "Groceries", res.Category)
}

func TestCategorize_AILabelOutsideVocabulary(t *testing.T) {
	fake := &fakeCompleter{reply: "Cryptocurrency Losses"}
	c := newTestCategorizer(fake)

	res := c.Categorize(context.Background(), "corner store", "")

	assert.Equal(t, FallbackCategory, res.Category)
	assert.Equal(t, MethodFallback, res.Method)
}

func TestCategorize_NilCompleter(t *testing.T) {
	c := newTestCategorizer(nil)

	res := c.Categorize(context.Background(), "mystery merchant", "")

	assert.Equal(t, FallbackCategory, res.Category)
	assert.Equal(t, MethodFallback, res.Method)
}

func TestMatchKeyword_FirstMatchWins(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	c := New([]KeywordRule{
		{"store", "Shopping"},
		{"book store", "Education"},
	}, nil, log)

	category, ok := c.MatchKeyword("book store purchase")

	require.True(t, ok)
	assert.Equal(t, "Shopping", category)
}
