package database

import (
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"moneypal-go-be/models"
)

// DB instance
var DB *gorm.DB

// ConnectDB connects to the database and runs migrations.
func ConnectDB(dsn string, log *logrus.Logger) {
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}
	dsn = ensureSSLMode(dsn)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})

	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	log.Info("Connected to database successfully")

	log.Info("Running migrations...")
	err = DB.AutoMigrate(&models.User{}, &models.Transaction{}, &models.Goal{})
	if err != nil {
		log.WithError(err).Fatal("Failed to migrate database")
	}
	log.Info("Database migrated successfully")
}

// ensureSSLMode appends sslmode=require when the DSN does not set one,
// joining with & if the DSN already carries query parameters.
// Fixes Supabase connection refusal.
func ensureSSLMode(dsn string) string {
	if strings.Contains(dsn, "sslmode") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "sslmode=require"
}
