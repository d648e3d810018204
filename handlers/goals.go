package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"moneypal-go-be/database"
	"moneypal-go-be/finance"
	"moneypal-go-be/models"
)

// CreateGoalRequest represents the payload for explicit goal creation.
type CreateGoalRequest struct {
	Title          string  `json:"title"`
	TargetAmount   float64 `json:"target_amount"`
	DeadlineMonths int     `json:"deadline_months"`
	Category       string  `json:"category"`
}

// AddFundsRequest adds money to an existing goal.
type AddFundsRequest struct {
	AmountAdded float64 `json:"amount_added"`
}

// CreateGoal creates a savings goal for the caller.
func CreateGoal(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req CreateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Title) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}
	if req.TargetAmount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "target_amount must be positive"})
	}
	if req.DeadlineMonths <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "deadline_months must be positive"})
	}

	category := req.Category
	if category == "" {
		category = "General"
	}

	goal := models.Goal{
		UserID:            userID,
		Title:             req.Title,
		TargetAmount:      req.TargetAmount,
		CurrentAmount:     0,
		Deadline:          time.Now().AddDate(0, 0, 30*req.DeadlineMonths),
		Category:          category,
		MonthlyAllocation: req.TargetAmount / float64(req.DeadlineMonths),
		Status:            models.GoalActive,
	}
	if err := database.DB.Create(&goal).Error; err != nil {
		log.WithError(err).Error("Failed to create goal")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create goal"})
	}

	finance.InvalidateContext(c.UserContext(), cache, userID)

	return c.Status(fiber.StatusCreated).JSON(goal)
}

// ListGoals returns the caller's goals.
func ListGoals(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var goals []models.Goal
	if err := database.DB.Where("user_id = ?", userID).Find(&goals).Error; err != nil {
		log.WithError(err).Error("Failed to fetch goals")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch goals"})
	}

	return c.JSON(goals)
}

// AddFunds moves a goal forward; crossing the target marks it completed.
func AddFunds(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid goal ID"})
	}

	var req AddFundsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.AmountAdded <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "amount_added must be positive"})
	}

	var goal models.Goal
	if err := database.DB.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Goal not found"})
	}

	goal.CurrentAmount += req.AmountAdded
	if goal.CurrentAmount >= goal.TargetAmount {
		goal.Status = models.GoalCompleted
	}

	if err := database.DB.Save(&goal).Error; err != nil {
		log.WithError(err).Error("Failed to update goal")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update goal"})
	}

	finance.InvalidateContext(c.UserContext(), cache, userID)

	return c.JSON(goal)
}

// DeleteGoal removes a goal owned by the caller.
func DeleteGoal(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid goal ID"})
	}

	var goal models.Goal
	if err := database.DB.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Goal not found"})
	}

	if err := database.DB.Delete(&goal).Error; err != nil {
		log.WithError(err).Error("Failed to delete goal")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete goal"})
	}

	finance.InvalidateContext(c.UserContext(), cache, userID)

	return c.JSON(fiber.Map{"message": "Deleted"})
}
