package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/magabrotheeeer/vendor-directory/internal/models"
)

const accountColumns = `uid, email, password_hash, email_verified, confirmation_token,
			      confirmation_attempts, confirmation_expires,
			      company_name, company_description, company_phone, company_website,
			      company_street, company_street_two, company_city, company_state,
			      company_zip, company_latitude, company_longitude, services,
			      is_premium, premium_expires, first_alert_sent, second_alert_sent,
			      final_alert_sent`

func scanAccount(row interface{ Scan(...any) error }) (*models.Account, error) {
	a := &models.Account{}
	var confirmationExpires, premiumExpires sql.NullTime
	var services []byte
	if err := row.Scan(&a.UID, &a.Email, &a.PasswordHash, &a.EmailVerified, &a.ConfirmationToken,
		&a.ConfirmationAttempts, &confirmationExpires,
		&a.CompanyName, &a.CompanyDescription, &a.CompanyPhone, &a.CompanyWebsite,
		&a.CompanyStreet, &a.CompanyStreetTwo, &a.CompanyCity, &a.CompanyState,
		&a.CompanyZip, &a.CompanyLatitude, &a.CompanyLongitude, &services,
		&a.IsPremium, &premiumExpires, &a.FirstAlertSent, &a.SecondAlertSent,
		&a.FinalAlertSent); err != nil {
		return nil, err
	}
	if confirmationExpires.Valid {
		a.ConfirmationExpires = &confirmationExpires.Time
	}
	if premiumExpires.Valid {
		a.PremiumExpires = &premiumExpires.Time
	}
	a.Services = models.ServiceFlags{}
	if len(services) > 0 {
		if err := json.Unmarshal(services, &a.Services); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// CreateAccount сохраняет новую учетную запись и возвращает её uid.
func (s *Storage) CreateAccount(ctx context.Context, account models.Account) (string, error) {
	const op = "storage.CreateAccount"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	services, err := json.Marshal(account.Services)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO accounts (email, password_hash, confirmation_token,
			      confirmation_attempts, confirmation_expires, services)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING uid`
	var newUID string
	if err := s.DB.QueryRowContext(ctx, query,
		account.Email, account.PasswordHash, account.ConfirmationToken,
		account.ConfirmationAttempts, account.ConfirmationExpires, services).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetAccount возвращает учетную запись по её uid.
func (s *Storage) GetAccount(ctx context.Context, uid string) (*models.Account, error) {
	const op = "storage.GetAccount"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE uid = $1`
	account, err := scanAccount(s.DB.QueryRowContext(ctx, query, uid))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return account, nil
}

// GetAccountByEmail возвращает учетную запись по электронной почте.
func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	const op = "storage.GetAccountByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`
	account, err := scanAccount(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return account, nil
}

// GetAccountByConfirmationToken возвращает учетную запись по токену
// подтверждения почты.
func (s *Storage) GetAccountByConfirmationToken(ctx context.Context, token string) (*models.Account, error) {
	const op = "storage.GetAccountByConfirmationToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE confirmation_token = $1`
	account, err := scanAccount(s.DB.QueryRowContext(ctx, query, token))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return account, nil
}

// MarkEmailVerified отмечает почту подтвержденной и очищает токен.
// Возвращает количество изменённых строк.
func (s *Storage) MarkEmailVerified(ctx context.Context, uid string) (int, error) {
	const op = "storage.MarkEmailVerified"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE accounts
			  SET email_verified = true, confirmation_token = '', confirmation_expires = NULL
			  WHERE uid = $1`
	result, err := s.DB.ExecContext(ctx, query, uid)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// IncrementConfirmationAttempts увеличивает счетчик отправленных писем
// подтверждения и продлевает срок действия токена.
func (s *Storage) IncrementConfirmationAttempts(ctx context.Context, uid string, expires time.Time) error {
	const op = "storage.IncrementConfirmationAttempts"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE accounts
			  SET confirmation_attempts = confirmation_attempts + 1, confirmation_expires = $1
			  WHERE uid = $2`
	if _, err := s.DB.ExecContext(ctx, query, expires, uid); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateCompanyAddress обновляет адресные поля и геокоординаты компании.
func (s *Storage) UpdateCompanyAddress(ctx context.Context, uid, street, streetTwo, city, state, zip, latitude, longitude string) (int, error) {
	const op = "storage.UpdateCompanyAddress"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE accounts
			  SET company_street = $1, company_street_two = $2, company_city = $3,
			      company_state = $4, company_zip = $5, company_latitude = $6,
			      company_longitude = $7
			  WHERE uid = $8`
	result, err := s.DB.ExecContext(ctx, query, street, streetTwo, city, state, zip, latitude, longitude, uid)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdateCompanyPhone обновляет телефон компании.
func (s *Storage) UpdateCompanyPhone(ctx context.Context, uid, phone string) (int, error) {
	const op = "storage.UpdateCompanyPhone"
	return s.updateTextColumn(ctx, op, `UPDATE accounts SET company_phone = $1 WHERE uid = $2`, uid, phone)
}

// UpdateCompanyWebsite обновляет сайт компании.
func (s *Storage) UpdateCompanyWebsite(ctx context.Context, uid, website string) (int, error) {
	const op = "storage.UpdateCompanyWebsite"
	return s.updateTextColumn(ctx, op, `UPDATE accounts SET company_website = $1 WHERE uid = $2`, uid, website)
}

// UpdateCompanyName обновляет название компании.
func (s *Storage) UpdateCompanyName(ctx context.Context, uid, name string) (int, error) {
	const op = "storage.UpdateCompanyName"
	return s.updateTextColumn(ctx, op, `UPDATE accounts SET company_name = $1 WHERE uid = $2`, uid, name)
}

// UpdateCompanyDescription обновляет описание компании.
func (s *Storage) UpdateCompanyDescription(ctx context.Context, uid, description string) (int, error) {
	const op = "storage.UpdateCompanyDescription"
	return s.updateTextColumn(ctx, op, `UPDATE accounts SET company_description = $1 WHERE uid = $2`, uid, description)
}

// UpdateEmail обновляет электронную почту учетной записи.
func (s *Storage) UpdateEmail(ctx context.Context, uid, email string) (int, error) {
	const op = "storage.UpdateEmail"
	return s.updateTextColumn(ctx, op, `UPDATE accounts SET email = $1 WHERE uid = $2`, uid, email)
}

// UpdatePasswordHash обновляет хэш пароля учетной записи.
func (s *Storage) UpdatePasswordHash(ctx context.Context, uid, passwordHash string) (int, error) {
	const op = "storage.UpdatePasswordHash"
	return s.updateTextColumn(ctx, op, `UPDATE accounts SET password_hash = $1 WHERE uid = $2`, uid, passwordHash)
}

func (s *Storage) updateTextColumn(ctx context.Context, op, query, uid, value string) (int, error) {
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, query, value, uid)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdateCompanyServices заменяет набор услуг компании.
func (s *Storage) UpdateCompanyServices(ctx context.Context, uid string, services models.ServiceFlags) (int, error) {
	const op = "storage.UpdateCompanyServices"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	encoded, err := json.Marshal(services)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	result, err := s.DB.ExecContext(ctx, `UPDATE accounts SET services = $1 WHERE uid = $2`, encoded, uid)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveAccount удаляет учетную запись по uid и возвращает количество
// удалённых строк.
func (s *Storage) RemoveAccount(ctx context.Context, uid string) (int, error) {
	const op = "storage.RemoveAccount"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM accounts WHERE uid = $1`, uid)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListVendors возвращает подтвержденные учетные записи с полностью
// заполненным профилем, опционально отфильтрованные по штату. Профиль
// считается полным, когда обязательные текстовые поля непустые и включена
// хотя бы одна услуга.
func (s *Storage) ListVendors(ctx context.Context, state string, limit, offset int) ([]*models.Account, error) {
	const op = "storage.ListVendors"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + accountColumns + `
			  FROM accounts
			  WHERE email_verified = true
		      	AND company_name <> ''
		      	AND company_phone <> ''
		      	AND company_street <> ''
		      	AND company_city <> ''
		      	AND company_state <> ''
		      	AND company_zip <> ''
		      	AND EXISTS (
		      	    SELECT 1 FROM jsonb_each_text(services) AS flag(key, value)
		      	    WHERE flag.value = 'true'
		      	)
		      	AND ($1::text = '' OR company_state = $1)
			  ORDER BY company_name
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, state, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, account)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ActivatePremium включает платное размещение до указанной даты и сбрасывает
// флаги напоминаний нового оплаченного периода.
func (s *Storage) ActivatePremium(ctx context.Context, uid string, expires time.Time) (int, error) {
	const op = "storage.ActivatePremium"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE accounts
			  SET is_premium = true, premium_expires = $1,
			      first_alert_sent = false, second_alert_sent = false, final_alert_sent = false
			  WHERE uid = $2`
	result, err := s.DB.ExecContext(ctx, query, expires, uid)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// FindExpiredPremiumAccounts находит учетные записи, у которых срок платного
// размещения уже прошел, а флаг еще не сброшен.
func (s *Storage) FindExpiredPremiumAccounts(ctx context.Context) ([]*models.Account, error) {
	const op = "storage.FindExpiredPremiumAccounts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + accountColumns + `
			  FROM accounts
			  WHERE is_premium = true AND premium_expires <= NOW()`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, account)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ResetPremium сбрасывает платное размещение и флаги напоминаний — подготовка
// к следующему оплаченному периоду.
func (s *Storage) ResetPremium(ctx context.Context, uid string) (int, error) {
	const op = "storage.ResetPremium"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE accounts
			  SET is_premium = false, premium_expires = NULL,
			      first_alert_sent = false, second_alert_sent = false, final_alert_sent = false
			  WHERE uid = $1`
	result, err := s.DB.ExecContext(ctx, query, uid)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

func alertColumn(tier models.AlertTier) (string, error) {
	switch tier {
	case models.AlertTierFirst:
		return "first_alert_sent", nil
	case models.AlertTierSecond:
		return "second_alert_sent", nil
	case models.AlertTierFinal:
		return "final_alert_sent", nil
	}
	return "", fmt.Errorf("unknown alert tier: %s", tier)
}

// FindReminderCandidates находит платные учетные записи, срок которых
// истекает в пределах thresholdDays календарных дней и напоминание данной
// ступени еще не отправлялось.
func (s *Storage) FindReminderCandidates(ctx context.Context, tier models.AlertTier, thresholdDays int) ([]*models.Account, error) {
	const op = "storage.FindReminderCandidates"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	column, err := alertColumn(tier)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT ` + accountColumns + `
			  FROM accounts
			  WHERE is_premium = true
		      	AND ` + column + ` = false
		      	AND premium_expires::DATE - CURRENT_DATE BETWEEN 0 AND $1`
	rows, err := s.DB.QueryContext(ctx, query, thresholdDays)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, account)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// MarkReminderSent отмечает напоминание данной ступени отправленным.
func (s *Storage) MarkReminderSent(ctx context.Context, uid string, tier models.AlertTier) error {
	const op = "storage.MarkReminderSent"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	column, err := alertColumn(tier)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE accounts SET ` + column + ` = true WHERE uid = $1`
	if _, err := s.DB.ExecContext(ctx, query, uid); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
