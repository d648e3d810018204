package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"moneypal-go-be/ai"
	"moneypal-go-be/models"
)

const (
	fenceOpen  = "```json"
	fenceClose = "```"

	actionCreateGoal = "create_goal"

	defaultDeadlineMonths = 3
)

// Action is a structured command extracted from a model reply. Adding a new
// variant means adding a type here plus a case in ApplyAction; ExtractAction's
// signature stays fixed.
type Action interface {
	isAction()
}

// CreateGoal asks the server to persist a new savings goal.
type CreateGoal struct {
	Title          string
	TargetAmount   float64
	DeadlineMonths int
}

func (CreateGoal) isAction() {}

// ExtractAction scans a model reply for a fenced JSON action block. It is
// pure: no side effects, no I/O.
//
// Returns (nil, nil) when no block or an unknown action kind is present,
// (nil, ai.ErrMalformed) when a block is present but undecodable or missing
// required fields, and (action, nil) on success. Callers must keep the
// conversation alive on ErrMalformed by replying with the raw text.
func ExtractAction(text string) (Action, error) {
	start := strings.Index(text, fenceOpen)
	if start < 0 {
		return nil, nil
	}

	rest := text[start+len(fenceOpen):]
	end := strings.Index(rest, fenceClose)
	if end < 0 {
		return nil, fmt.Errorf("%w: unterminated action block", ai.ErrMalformed)
	}
	raw := strings.TrimSpace(rest[:end])

	var payload struct {
		Action         string   `json:"action"`
		Title          string   `json:"title"`
		TargetAmount   *float64 `json:"target_amount"`
		DeadlineMonths *int     `json:"deadline_months"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("%w: undecodable action block: %v", ai.ErrMalformed, err)
	}

	if payload.Action != actionCreateGoal {
		// Unknown action kinds are ignored silently.
		return nil, nil
	}

	title := strings.TrimSpace(payload.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: create_goal without title", ai.ErrMalformed)
	}
	if payload.TargetAmount == nil || *payload.TargetAmount <= 0 {
		return nil, fmt.Errorf("%w: create_goal without positive target_amount", ai.ErrMalformed)
	}

	months := defaultDeadlineMonths
	if payload.DeadlineMonths != nil {
		months = *payload.DeadlineMonths
	}
	if months <= 0 {
		// Guard the monthly-allocation division.
		return nil, fmt.Errorf("%w: create_goal with non-positive deadline_months", ai.ErrMalformed)
	}

	return CreateGoal{
		Title:          title,
		TargetAmount:   *payload.TargetAmount,
		DeadlineMonths: months,
	}, nil
}

// ApplyAction commits an extracted action and returns the confirmation reply.
// Kept separate from ExtractAction so a persistence failure after a clean
// parse is reportable instead of being swallowed.
func ApplyAction(ctx context.Context, db *gorm.DB, userID uuid.UUID, action Action) (string, error) {
	switch a := action.(type) {
	case CreateGoal:
		goal := goalFromAction(userID, a)
		if err := db.WithContext(ctx).Create(&goal).Error; err != nil {
			return "", fmt.Errorf("failed to persist goal %q: %w", a.Title, err)
		}
		return confirmationReply(a), nil
	default:
		return "", fmt.Errorf("unsupported action %T", action)
	}
}

func goalFromAction(userID uuid.UUID, a CreateGoal) models.Goal {
	return models.Goal{
		UserID:            userID,
		Title:             a.Title,
		TargetAmount:      a.TargetAmount,
		CurrentAmount:     0,
		Deadline:          time.Now().AddDate(0, 0, 30*a.DeadlineMonths),
		Category:          "General",
		MonthlyAllocation: a.TargetAmount / float64(a.DeadlineMonths),
		Status:            models.GoalActive,
	}
}

func confirmationReply(a CreateGoal) string {
	monthly := a.TargetAmount / float64(a.DeadlineMonths)
	return fmt.Sprintf("Done! 🎯 I've officially created the goal '%s' on your dashboard. You need to save ₹%.0f/month.", a.Title, monthly)
}
