package handlers

import (
	"math"

	"github.com/gofiber/fiber/v2"

	"moneypal-go-be/database"
	"moneypal-go-be/models"
)

// UpdateBudgetRequest sets the monthly allowance.
type UpdateBudgetRequest struct {
	MonthlyAllowance float64 `json:"monthly_allowance"`
}

// Me returns the caller's profile.
func Me(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{
		"full_name":         user.FullName,
		"email":             user.Email,
		"monthly_allowance": user.MonthlyAllowance,
		"safe_daily_spend":  user.SafeDailySpend,
		"currency":          "INR",
	})
}

// UpdateBudget sets the monthly allowance and derives the safe daily spend.
func UpdateBudget(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req UpdateBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.MonthlyAllowance < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "monthly_allowance must not be negative"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	user.MonthlyAllowance = req.MonthlyAllowance
	user.SafeDailySpend = math.Round(req.MonthlyAllowance/30*100) / 100

	if err := database.DB.Save(&user).Error; err != nil {
		log.WithError(err).Error("Failed to update budget")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update budget"})
	}

	// A tighter allowance may already be in alert territory.
	go checkBudgetAlert(userID)

	return c.JSON(fiber.Map{"message": "Budget updated!", "new_allowance": user.MonthlyAllowance})
}
