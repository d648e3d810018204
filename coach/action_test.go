package coach

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneypal-go-be/ai"
	"moneypal-go-be/finance"
	"moneypal-go-be/models"
)

func TestExtractAction_NoFence(t *testing.T) {
	action, err := ExtractAction("You're doing great, keep saving ₹500 a week!")

	require.NoError(t, err)
	assert.Nil(t, action)
}

func TestExtractAction_WellFormed(t *testing.T) {
	reply := "Love it! Let's lock that in.\n```json\n" +
		`{"action": "create_goal", "title": "Guitar", "target_amount": 12000, "deadline_months": 3}` +
		"\n```\nYou've got this."

	action, err := ExtractAction(reply)

	require.NoError(t, err)
	goal, ok := action.(CreateGoal)
	require.True(t, ok)
	assert.Equal(t, "Guitar", goal.Title)
	assert.Equal(t, 12000.0, goal.TargetAmount)
	assert.Equal(t, 3, goal.DeadlineMonths)
}

func TestExtractAction_DefaultsDeadlineMonths(t *testing.T) {
	reply := "```json\n" +
		`{"action": "create_goal", "title": "Camera", "target_amount": 30000}` +
		"\n```"

	action, err := ExtractAction(reply)

	require.NoError(t, err)
	goal := action.(CreateGoal)
	assert.Equal(t, 3, goal.DeadlineMonths)
}

func TestExtractAction_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{
			"zero deadline months",
			"```json\n" + `{"action": "create_goal", "title": "Guitar", "target_amount": 12000, "deadline_months": 0}` + "\n```",
		},
		{
			"negative deadline months",
			"```json\n" + `{"action": "create_goal", "title": "Guitar", "target_amount": 12000, "deadline_months": -2}` + "\n```",
		},
		{
			"missing closing fence",
			"```json\n" + `{"action": "create_goal", "title": "Guitar", "target_amount": 12000}`,
		},
		{
			"invalid json",
			"```json\n{action: create_goal,}\n```",
		},
		{
			"wrong field type",
			"```json\n" + `{"action": "create_goal", "title": "Guitar", "target_amount": "lots"}` + "\n```",
		},
		{
			"missing title",
			"```json\n" + `{"action": "create_goal", "target_amount": 12000}` + "\n```",
		},
		{
			"non-positive target",
			"```json\n" + `{"action": "create_goal", "title": "Guitar", "target_amount": 0}` + "\n```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, err := ExtractAction(tt.reply)

			assert.Nil(t, action)
			assert.ErrorIs(t, err, ai.ErrMalformed)
		})
	}
}

func TestExtractAction_UnknownActionIgnored(t *testing.T) {
	reply := "```json\n" + `{"action": "delete_everything", "title": "x"}` + "\n```"

	action, err := ExtractAction(reply)

	require.NoError(t, err)
	assert.Nil(t, action)
}

func TestGoalFromAction(t *testing.T) {
	userID := uuid.New()
	goal := goalFromAction(userID, CreateGoal{Title: "Guitar", TargetAmount: 12000, DeadlineMonths: 3})

	assert.Equal(t, userID, goal.UserID)
	assert.Equal(t, "Guitar", goal.Title)
	assert.Equal(t, 4000.0, goal.MonthlyAllocation)
	assert.Equal(t, 0.0, goal.CurrentAmount)
	assert.Equal(t, "General", goal.Category)
	assert.Equal(t, models.GoalActive, goal.Status)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 90), goal.Deadline, time.Minute)
}

func TestConfirmationReply(t *testing.T) {
	reply := confirmationReply(CreateGoal{Title: "Guitar", TargetAmount: 12000, DeadlineMonths: 3})

	assert.Contains(t, reply, "Guitar")
	assert.Contains(t, reply, "4000")
}

func TestSystemPrompt_ContainsContextAndTrigger(t *testing.T) {
	s := finance.Summary{Income: 50000, Expenses: 2000, Balance: 48000, GoalSummary: "None"}

	prompt := SystemPrompt("Asha", s, "")

	assert.Contains(t, prompt, "Asha")
	assert.Contains(t, prompt, "₹50000.00")
	assert.Contains(t, prompt, "₹48000.00")
	assert.Contains(t, prompt, "Goals: None")
	assert.Contains(t, prompt, `"action": "create_goal"`)
}

func TestSystemPrompt_LanguageHint(t *testing.T) {
	prompt := SystemPrompt("Asha", finance.Summary{GoalSummary: "None"}, "hi")

	assert.Contains(t, prompt, "Reply in hi.")
}
