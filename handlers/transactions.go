package handlers

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"moneypal-go-be/ai"
	"moneypal-go-be/database"
	"moneypal-go-be/finance"
	"moneypal-go-be/mailer"
	"moneypal-go-be/models"
)

// AddTransactionRequest represents the payload for adding a transaction.
type AddTransactionRequest struct {
	Amount          float64    `json:"amount"`
	Description     string     `json:"description"`
	Merchant        string     `json:"merchant"`
	TransactionType string     `json:"transaction_type"`
	PaymentMethod   string     `json:"payment_method"`
	Date            *time.Time `json:"date"`
}

// RecategorizeRequest corrects the category on one transaction.
type RecategorizeRequest struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	NewCategory   string    `json:"new_category"`
	NewMerchant   string    `json:"new_merchant"`
}

// MagicParseRequest holds free text like "Spent 500 on dinner".
type MagicParseRequest struct {
	Text string `json:"text"`
}

// AddTransaction categorizes and inserts a transaction. Categorization can
// never block the insert: the categorizer degrades internally.
func AddTransaction(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req AddTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Description) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "description is required"})
	}
	if req.TransactionType != models.TypeCredit && req.TransactionType != models.TypeDebit {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "transaction_type must be credit or debit"})
	}

	result := cat.Categorize(c.UserContext(), req.Description, req.Merchant)

	merchant := req.Merchant
	if merchant == "" {
		merchant = "Unknown"
	}
	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "Cash"
	}
	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	transaction := models.Transaction{
		UserID:          userID,
		Amount:          req.Amount,
		Description:     req.Description,
		Merchant:        merchant,
		Category:        result.Category,
		TransactionType: req.TransactionType,
		PaymentMethod:   paymentMethod,
		Date:            date,
	}
	if err := database.DB.Create(&transaction).Error; err != nil {
		log.WithError(err).Error("Failed to insert transaction")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add transaction"})
	}

	finance.InvalidateContext(c.UserContext(), cache, userID)
	if transaction.TransactionType == models.TypeDebit {
		go checkBudgetAlert(userID)
	}

	return c.JSON(fiber.Map{
		"id":                    transaction.ID,
		"amount":                transaction.Amount,
		"description":           transaction.Description,
		"category":              transaction.Category,
		"date":                  transaction.Date,
		"category_confidence":   result.Confidence,
		"categorization_method": result.Method,
	})
}

// ListTransactions returns the caller's transactions, newest first.
func ListTransactions(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	var txns []models.Transaction
	if err := database.DB.Where("user_id = ?", userID).Order("date DESC").Limit(limit).Find(&txns).Error; err != nil {
		log.WithError(err).Error("Failed to fetch transactions")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch transactions"})
	}

	return c.JSON(txns)
}

// ChartData returns last-7-day daily debit totals, zero-filled.
func ChartData(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	since := time.Now().AddDate(0, 0, -7)

	var txns []models.Transaction
	err := database.DB.
		Where("user_id = ? AND transaction_type = ? AND date >= ?", userID, models.TypeDebit, since).
		Find(&txns).Error
	if err != nil {
		log.WithError(err).Error("Failed to fetch chart transactions")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch chart data"})
	}

	return c.JSON(buildChartData(txns, since))
}

// ChartPoint is one day on the dashboard spend chart.
type ChartPoint struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// buildChartData buckets debits per day and emits 8 points from `since`
// through today, zero-filling empty days.
func buildChartData(txns []models.Transaction, since time.Time) []ChartPoint {
	dailyTotals := make(map[string]float64)
	for _, t := range txns {
		dailyTotals[t.Date.Format("2006-01-02")] += t.Amount
	}

	points := make([]ChartPoint, 0, 8)
	for i := 0; i < 8; i++ {
		d := since.AddDate(0, 0, i).Format("2006-01-02")
		points = append(points, ChartPoint{Name: d[5:], Amount: dailyTotals[d]})
	}
	return points
}

// MagicParse converts free text like "Spent 500 on dinner" into a structured
// transaction draft using the model.
func MagicParse(c *fiber.Ctx) error {
	var req MagicParseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Text) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "text is required"})
	}
	if completer == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "AI is not configured"})
	}

	prompt := "Extract transaction from: \"" + req.Text + "\"\n" +
		"Return JSON with: amount (number), description (string), category (Food & Dining, Transport, Shopping, etc)\n" +
		"Return ONLY raw JSON."

	reply, err := completer.Complete(c.UserContext(), ai.Request{Prompt: prompt, Temperature: 0.1})
	if err != nil {
		log.WithError(err).Warn("Magic parse generation failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "AI is unavailable right now"})
	}

	var parsed struct {
		Amount      float64 `json:"amount"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
	}
	if err := json.Unmarshal([]byte(stripFences(reply)), &parsed); err != nil {
		log.WithError(err).WithField("raw", reply).Warn("Magic parse returned undecodable JSON")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Could not parse that, try rephrasing"})
	}

	return c.JSON(parsed)
}

// Recategorize lets the owner correct the category on one transaction.
func Recategorize(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req RecategorizeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.NewCategory) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "new_category is required"})
	}

	var transaction models.Transaction
	if err := database.DB.Where("id = ? AND user_id = ?", req.TransactionID, userID).First(&transaction).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
	}

	transaction.Category = req.NewCategory
	if req.NewMerchant != "" {
		transaction.Merchant = req.NewMerchant
	}
	transaction.IsManual = true

	if err := database.DB.Save(&transaction).Error; err != nil {
		log.WithError(err).Error("Failed to update transaction")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update transaction"})
	}

	finance.InvalidateContext(c.UserContext(), cache, userID)

	return c.JSON(fiber.Map{"message": "Transaction updated successfully"})
}

// stripFences removes a leading/trailing markdown code fence the model tends
// to wrap JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// checkBudgetAlert emails the user when month-to-date debits cross the
// allowance thresholds. Runs off the request path.
func checkBudgetAlert(userID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var user models.User
	if err := database.DB.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		log.WithError(err).Warn("Budget alert: failed to load user")
		return
	}
	if user.MonthlyAllowance == 0 {
		return
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var spent float64
	err := database.DB.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND transaction_type = ? AND date >= ?", userID, models.TypeDebit, monthStart).
		Scan(&spent).Error
	if err != nil {
		log.WithError(err).Warn("Budget alert: failed to sum spend")
		return
	}

	smtpCfg := mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
	}
	if smtpCfg.Username == "" {
		return
	}
	mailer.SendBudgetAlert(smtpCfg, user.Email, user.FullName, spent, user.MonthlyAllowance, log)
}
