package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction types.
const (
	TypeCredit = "credit"
	TypeDebit  = "debit"
)

// Goal statuses.
const (
	GoalActive    = "active"
	GoalCompleted = "completed"
	GoalAbandoned = "abandoned"
)

// User represents a user in the system.
type User struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email            string    `gorm:"uniqueIndex;not null" json:"email"`
	HashedPassword   string    `gorm:"not null" json:"-"`
	FullName         string    `json:"full_name"`
	MonthlyAllowance float64   `gorm:"default:0" json:"monthly_allowance"`
	SafeDailySpend   float64   `gorm:"default:0" json:"safe_daily_spend"`
	CreatedAt        time.Time `json:"created_at"`
}

// Transaction represents a financial transaction. Category is assigned by the
// categorizer before insert and is never left empty.
type Transaction struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount          float64   `json:"amount"`
	Description     string    `json:"description"`
	Merchant        string    `json:"merchant"`
	Category        string    `gorm:"not null" json:"category"`
	TransactionType string    `gorm:"not null" json:"transaction_type"` // credit | debit
	PaymentMethod   string    `json:"payment_method"`
	IsManual        bool      `gorm:"default:false" json:"is_manual"`
	Date            time.Time `json:"date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Goal represents a savings goal. Goals are created either explicitly or by
// the coach when a goal-creation action is found in a model reply.
type Goal struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title             string    `gorm:"not null" json:"title"`
	TargetAmount      float64   `json:"target_amount"`
	CurrentAmount     float64   `gorm:"default:0" json:"current_amount"`
	Deadline          time.Time `json:"deadline"`
	Category          string    `json:"category"`
	MonthlyAllocation float64   `json:"monthly_allocation"`
	Status            string    `gorm:"default:active" json:"status"` // active | completed | abandoned
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
