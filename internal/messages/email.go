package messages

import (
	"fmt"
	"time"
)

// Темы транзакционных писем. Фиксированы для каждого шаблона.
const (
	ConfirmationEmailSubject = "Please Confirm Your Account"
	FirstAlertEmailSubject   = "Your Premium Listing Expires Soon"
	SecondAlertEmailSubject  = "Reminder: Your Premium Listing Expires Soon"
	FinalAlertEmailSubject   = "Final Reminder: Your Premium Listing Is About To Expire"
)

// ConfirmationEmailBody строит текст письма подтверждения учетной записи.
func ConfirmationEmailBody(companyName, confirmationURL string) string {
	return fmt.Sprintf(`Hello %s,

Thank you for registering. To activate your account please follow this link: %s

If you did not register this account you can safely ignore this email.`, companyName, confirmationURL)
}

// ExpirationAlertEmailBody строит текст напоминания об окончании платного
// размещения. numberOfDays — календарные дни до даты окончания.
func ExpirationAlertEmailBody(companyName string, expirationDate time.Time, numberOfDays int) string {
	return fmt.Sprintf(`Hello %s,

Your premium listing expires on %s, %d day(s) from now.

To keep your website link and company description visible in the directory please renew before that date. There are no contracts or recurring billing, so nothing is charged automatically.`,
		companyName, expirationDate.Format("January 2, 2006"), numberOfDays)
}

// PremiumExpiredEmailBody строит текст уведомления о прекращении платного размещения.
func PremiumExpiredEmailBody(companyName string) string {
	return fmt.Sprintf(`Hello %s,

Your premium listing has expired. Your company still appears in the directory, but the website link and company description are no longer shown. You can upgrade again at any time.`, companyName)
}
