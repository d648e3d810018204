// Package mailer sends budget-risk alert emails.
package mailer

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/sirupsen/logrus"
)

// SMTPConfig carries the SMTP connection settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

type alertLevel struct {
	Status string
	Color  string
	Advice string
	Send   bool
}

// classifyUsage decides whether and how to alert. Under 75% usage no mail is
// sent; above 90% with more than 5 days left in the month the projection is
// marked critical.
func classifyUsage(percent float64, daysLeft int, now time.Time) alertLevel {
	switch {
	case percent > 90 && daysLeft > 5:
		runOut := now.AddDate(0, 0, 2)
		return alertLevel{
			Status: "CRITICAL PREDICTION",
			Color:  "#dc2626",
			Advice: fmt.Sprintf("⚠️ At this rate, you will run out of money by %s!", runOut.Format("Jan 2")),
			Send:   true,
		}
	case percent >= 75:
		return alertLevel{
			Status: "Warning",
			Color:  "#f59e0b",
			Advice: "Try to cut down on dining out for a few days.",
			Send:   true,
		}
	default:
		return alertLevel{Send: false}
	}
}

// SendBudgetAlert emails a budget-risk warning when month-to-date spend
// crosses the thresholds. Send failures are logged, never returned to the
// request path.
func SendBudgetAlert(cfg SMTPConfig, email, userName string, spent, limit float64, log *logrus.Logger) {
	if limit == 0 {
		return
	}

	now := time.Now()
	lastDay := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	daysLeft := lastDay - now.Day()

	percent := (spent / limit) * 100
	level := classifyUsage(percent, daysLeft, now)
	if !level.Send {
		return
	}

	subject := fmt.Sprintf("⚠️ MoneyPal Alert: %s", level.Status)
	body := alertHTML(userName, level, percent, spent, limit)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		cfg.Username, email, subject, body)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)

	if err := smtp.SendMail(addr, auth, cfg.Username, []string{email}, []byte(msg)); err != nil {
		log.WithError(err).WithField("email", email).Warn("Failed to send budget alert")
		return
	}
	log.WithField("email", email).Info("Budget alert sent")
}

func alertHTML(userName string, level alertLevel, percent, spent, limit float64) string {
	return fmt.Sprintf(`<div style="font-family: 'Helvetica Neue', Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e2e8f0; border-radius: 12px; background-color: #ffffff;">
  <h2 style="color: %s; margin-top: 0;">%s: Budget Risk</h2>
  <p style="font-size: 16px; color: #334155;">Hi <b>%s</b>,</p>
  <div style="background-color: #f8fafc; padding: 20px; border-radius: 8px; margin: 20px 0; border-left: 5px solid %s;">
    <p style="margin: 5px 0; font-size: 18px;">🔥 <b>Used:</b> %.1f%%</p>
    <p style="margin: 5px 0; color: #64748b;">(₹%.0f of ₹%.0f)</p>
    <hr style="border: 0; border-top: 1px solid #e2e8f0; margin: 15px 0;">
    <p style="margin: 0; font-weight: bold; color: %s;">%s</p>
  </div>
  <p style="font-size: 14px; color: #94a3b8;">MoneyPal AI Coach • Automated Alert system</p>
</div>`, level.Color, level.Status, userName, level.Color, percent, spent, limit, level.Color, level.Advice)
}
