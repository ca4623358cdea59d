// Package models содержит доменные структуры каталога компаний: учетную
// запись, перечень услуг, черновик профиля и списки полей веб-форм.
package models

import (
	"time"

	"github.com/magabrotheeeer/vendor-directory/internal/lib/days"
)

// AccountState — явное состояние жизненного цикла учетной записи.
type AccountState string

const (
	// StateUnverified — почта не подтверждена.
	StateUnverified AccountState = "unverified"
	// StateVerified — почта подтверждена, бесплатный тариф.
	StateVerified AccountState = "verified"
	// StatePremium — действует платное размещение.
	StatePremium AccountState = "premium"
	// StatePremiumLapsed — срок платного размещения истек, но ночная задача
	// еще не сбросила флаг.
	StatePremiumLapsed AccountState = "premiumLapsed"
)

// Account представляет учетную запись компании в каталоге.
// Пустая строка — каноническое значение "не заполнено" для текстовых полей.
type Account struct {
	UID          string // Уникальный идентификатор учетной записи
	Email        string // Электронная почта (уникальная)
	PasswordHash string // bcrypt-хэш пароля

	EmailVerified        bool       // Подтверждена ли почта
	ConfirmationToken    string     // Токен подтверждения почты
	ConfirmationAttempts int        // Сколько писем подтверждения отправлено
	ConfirmationExpires  *time.Time // Когда истекает токен подтверждения

	CompanyName        string
	CompanyDescription string // Необязательное
	CompanyPhone       string
	CompanyWebsite     string // Необязательное
	CompanyStreet      string
	CompanyStreetTwo   string // Необязательное
	CompanyCity        string
	CompanyState       string
	CompanyZip         string
	CompanyLatitude    string
	CompanyLongitude   string

	Services ServiceFlags

	IsPremium       bool       // Действует ли платное размещение
	PremiumExpires  *time.Time // Дата окончания платного размещения
	FirstAlertSent  bool       // Отправлено ли первое напоминание
	SecondAlertSent bool       // Отправлено ли второе напоминание
	FinalAlertSent  bool       // Отправлено ли последнее напоминание
}

// LifecycleState возвращает явное состояние жизненного цикла учетной записи.
func (a *Account) LifecycleState(now time.Time) AccountState {
	switch {
	case !a.EmailVerified:
		return StateUnverified
	case a.IsPremium && a.PremiumExpires != nil && !a.PremiumExpires.After(now):
		return StatePremiumLapsed
	case a.IsPremium:
		return StatePremium
	default:
		return StateVerified
	}
}

// DaysUntilPremiumExpiration возвращает количество календарных дней до
// окончания платного размещения. Для бесплатной учетной записи всегда -1.
func (a *Account) DaysUntilPremiumExpiration(now time.Time) int {
	if !a.IsPremium || a.PremiumExpires == nil {
		return -1
	}
	return days.Until(now, *a.PremiumExpires)
}
