package database

import (
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/sirupsen/logrus"

	"moneypal-go-be/auth"
	"moneypal-go-be/models"
)

const demoEmail = "demo@moneypal.app"

var demoCategories = []string{
	"Food & Dining", "Transport", "Shopping", "Groceries", "Utilities", "Entertainment",
}

// SeedDemoData inserts a demo account with fake transactions and goals.
// Skipped entirely when the demo user already exists. Dev use only.
func SeedDemoData(log *logrus.Logger) {
	var existing models.User
	if err := DB.Where("email = ?", demoEmail).First(&existing).Error; err == nil {
		log.Info("Demo data already present, skipping seed")
		return
	}

	hashed, err := auth.HashPassword("demo1234")
	if err != nil {
		log.WithError(err).Error("Seed: failed to hash demo password")
		return
	}

	user := models.User{
		Email:            demoEmail,
		HashedPassword:   hashed,
		FullName:         gofakeit.Name(),
		MonthlyAllowance: 30000,
		SafeDailySpend:   1000,
	}
	if err := DB.Create(&user).Error; err != nil {
		log.WithError(err).Error("Seed: failed to create demo user")
		return
	}

	txns := make([]models.Transaction, 0, 41)
	txns = append(txns, models.Transaction{
		UserID:          user.ID,
		Amount:          50000,
		Description:     "Monthly salary",
		Merchant:        "Employer",
		Category:        "Income",
		TransactionType: models.TypeCredit,
		PaymentMethod:   "Bank Transfer",
		Date:            time.Now().AddDate(0, 0, -28),
	})
	for i := 0; i < 40; i++ {
		txns = append(txns, models.Transaction{
			UserID:          user.ID,
			Amount:          gofakeit.Price(50, 2000),
			Description:     gofakeit.ProductName(),
			Merchant:        gofakeit.Company(),
			Category:        demoCategories[rand.Intn(len(demoCategories))],
			TransactionType: models.TypeDebit,
			PaymentMethod:   "UPI",
			Date:            time.Now().AddDate(0, 0, -rand.Intn(30)),
		})
	}
	if err := DB.CreateInBatches(txns, 100).Error; err != nil {
		log.WithError(err).Error("Seed: failed to create demo transactions")
		return
	}

	goal := models.Goal{
		UserID:            user.ID,
		Title:             "Goa Trip",
		TargetAmount:      20000,
		CurrentAmount:     5000,
		Deadline:          time.Now().AddDate(0, 0, 120),
		Category:          "Travel",
		MonthlyAllocation: 5000,
		Status:            models.GoalActive,
	}
	if err := DB.Create(&goal).Error; err != nil {
		log.WithError(err).Error("Seed: failed to create demo goal")
		return
	}

	log.WithField("email", demoEmail).Info("Seeded demo data")
}
