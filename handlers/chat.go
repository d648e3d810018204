package handlers

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"moneypal-go-be/ai"
	"moneypal-go-be/coach"
	"moneypal-go-be/database"
	"moneypal-go-be/fileextract"
	"moneypal-go-be/finance"
	"moneypal-go-be/models"
)

// ChatRequest represents the JSON body of a chat turn.
type ChatRequest struct {
	Message  string `json:"message"`
	Language string `json:"language"`
}

const (
	replyOffline    = "My brain is offline momentarily. Please try again in a bit."
	replySaveFailed = "I understood the goal, but couldn't save it just now. Please try again!"
)

// Chat runs one coach turn: build financial context, assemble the prompt
// (plus an optional uploaded statement), call the model, then extract and
// apply any embedded action. AI flakiness never surfaces as a 5xx.
func Chat(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	message, language, fileText, attachments := parseChatInput(c)
	if strings.TrimSpace(message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "message is required"})
	}

	dbCtx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := database.DB.WithContext(dbCtx).First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	summary, err := finance.BuildContext(dbCtx, database.DB, cache, userID)
	if err != nil {
		log.WithError(err).Error("Failed to build financial context")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load your financial data"})
	}

	if completer == nil {
		return c.JSON(fiber.Map{"reply": replyOffline})
	}

	prompt := message
	if fileText != "" {
		prompt = fmt.Sprintf("--- USER UPLOADED FILE ---\n%s\n----------------\n\nUser Query: %s", fileText, message)
	}

	reply, err := completer.Complete(c.UserContext(), ai.Request{
		System:      coach.SystemPrompt(user.FullName, summary, language),
		Prompt:      prompt,
		Attachments: attachments,
		Temperature: 0.6,
	})
	if err != nil {
		log.WithError(err).Warn("Chat generation failed")
		return c.JSON(fiber.Map{"reply": replyOffline})
	}

	action, err := coach.ExtractAction(reply)
	if err != nil {
		// The block was broken; the conversation survives on the raw text.
		log.WithError(err).Warn("Malformed action block in model reply")
		return c.JSON(fiber.Map{"reply": reply})
	}
	if action == nil {
		return c.JSON(fiber.Map{"reply": reply})
	}

	confirmation, err := coach.ApplyAction(c.UserContext(), database.DB, userID, action)
	if err != nil {
		log.WithError(err).Error("Failed to apply chat action")
		return c.JSON(fiber.Map{"reply": replySaveFailed})
	}

	finance.InvalidateContext(c.UserContext(), cache, userID)

	return c.JSON(fiber.Map{"reply": confirmation})
}

// parseChatInput reads the chat turn from either a JSON body or a multipart
// form with an optional statement upload.
func parseChatInput(c *fiber.Ctx) (message, language, fileText string, attachments []ai.Attachment) {
	if form, err := c.MultipartForm(); err == nil && form != nil {
		message = c.FormValue("message")
		language = c.FormValue("language")

		if files := form.File["file"]; len(files) > 0 {
			header := files[0]
			f, err := header.Open()
			if err != nil {
				log.WithError(err).Warn("Failed to open uploaded file")
				return message, language, "", nil
			}
			defer f.Close()

			data, err := io.ReadAll(f)
			if err != nil {
				log.WithError(err).Warn("Failed to read uploaded file")
				return message, language, "", nil
			}
			fileText, attachments = fileextract.FromUpload(header.Filename, data, log)
		}
		return message, language, fileText, attachments
	}

	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return "", "", "", nil
	}
	return req.Message, req.Language, "", nil
}

// Audit analyzes the caller's recent transactions for draining habits.
func Audit(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var txns []models.Transaction
	if err := database.DB.Where("user_id = ?", userID).Order("date DESC").Limit(15).Find(&txns).Error; err != nil {
		log.WithError(err).Error("Failed to fetch transactions for audit")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch transactions"})
	}
	if len(txns) == 0 {
		return c.JSON(fiber.Map{"audit": "No transactions found! Go spend some money (or earn some) first."})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	if completer == nil {
		return c.JSON(fiber.Map{"audit": "I need more data to analyze properly! (AI is not configured)"})
	}

	reply, err := completer.Complete(c.UserContext(), ai.Request{
		Prompt:      coach.AuditPrompt(user.FullName, renderAuditSummary(txns)),
		Temperature: 0.7,
	})
	if err != nil {
		log.WithError(err).Warn("Audit generation failed")
		return c.JSON(fiber.Map{"audit": "I need more data to analyze properly! (AI Error)"})
	}

	return c.JSON(fiber.Map{"audit": reply})
}

func renderAuditSummary(txns []models.Transaction) string {
	lines := make([]string, 0, len(txns))
	for _, t := range txns {
		lines = append(lines, fmt.Sprintf("- %s: %s - ₹%.0f (%s)", t.Date.Format("2006-01-02"), t.Description, t.Amount, t.Category))
	}
	return strings.Join(lines, "\n")
}
