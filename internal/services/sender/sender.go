// Package sender содержит сервис отправки транзакционных писем: писем
// подтверждения, напоминаний об окончании платного размещения и
// уведомления о его прекращении.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/vendor-directory/internal/lib/sl"
	"github.com/magabrotheeeer/vendor-directory/internal/lib/smtp"
	"github.com/magabrotheeeer/vendor-directory/internal/messages"
	"github.com/magabrotheeeer/vendor-directory/internal/models"
)

// Service отправляет письма через SMTP транспорт.
type Service struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(transport smtp.TransportInterface, log *slog.Logger) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// SendReminder обрабатывает сообщение очереди напоминаний: строит письмо
// нужной ступени и отправляет его.
func (s *Service) SendReminder(body []byte) error {
	var message models.ReminderInfo
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal reminder message", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	expirationDate, err := time.Parse("2006-01-02", message.ExpirationDate)
	if err != nil {
		s.log.Error("failed to parse expiration date", sl.Err(err))
		return fmt.Errorf("error parsing expiration date: %w", err)
	}

	var subject string
	switch message.Tier {
	case models.AlertTierSecond:
		subject = messages.SecondAlertEmailSubject
	case models.AlertTierFinal:
		subject = messages.FinalAlertEmailSubject
	default:
		subject = messages.FirstAlertEmailSubject
	}

	bodyText := messages.ExpirationAlertEmailBody(message.CompanyName, expirationDate, message.DaysRemaining)
	return s.Send(message.Email, subject, bodyText)
}

// SendPremiumExpired обрабатывает сообщение о прекращении платного размещения.
func (s *Service) SendPremiumExpired(body []byte) error {
	var message models.ReminderInfo
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal expired message", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	bodyText := messages.PremiumExpiredEmailBody(message.CompanyName)
	return s.Send(message.Email, "Your Premium Listing Has Expired", bodyText)
}

// Send отправляет письмо одному получателю.
func (s *Service) Send(to, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), sl.Err(err))
		return err
	}

	if err := client.Rcpt(to); err != nil {
		s.log.Error("failed to set RCPT TO", "recipient", to, sl.Err(err))
		return err
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
