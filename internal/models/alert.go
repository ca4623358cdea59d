package models

// AlertTier — ступень напоминания об окончании платного размещения.
type AlertTier string

// Три ступени напоминаний. Каждая отправляется не более одного раза за
// оплаченный период.
const (
	AlertTierFirst  AlertTier = "first"
	AlertTierSecond AlertTier = "second"
	AlertTierFinal  AlertTier = "final"
)

// ReminderInfo — сообщение очереди уведомлений об окончании платного
// размещения.
type ReminderInfo struct {
	Email          string    `json:"email"`
	CompanyName    string    `json:"company_name"`
	ExpirationDate string    `json:"expiration_date"`
	DaysRemaining  int       `json:"days_remaining"`
	Tier           AlertTier `json:"tier"`
}
