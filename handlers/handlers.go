package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"moneypal-go-be/ai"
	"moneypal-go-be/categorizer"
	"moneypal-go-be/config"
	"moneypal-go-be/database"
	"moneypal-go-be/middleware"
)

var (
	cfg       *config.Config
	cat       *categorizer.Categorizer
	completer ai.Completer
	cache     *database.Cache
	log       *logrus.Logger
)

// Init wires the shared dependencies for all handlers. completer and cache
// may be nil; handlers degrade accordingly.
func Init(c *config.Config, ctgr *categorizer.Categorizer, comp ai.Completer, ch *database.Cache, logger *logrus.Logger) {
	cfg = c
	cat = ctgr
	completer = comp
	cache = ch
	log = logger
}

// currentUserID returns the authenticated user ID placed in locals by the
// auth middleware.
func currentUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	userID, ok := c.Locals(middleware.UserIDKey).(uuid.UUID)
	return userID, ok
}
