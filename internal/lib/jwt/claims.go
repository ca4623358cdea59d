// Package jwt реализует генерацию и парсинг JWT токенов с пользовательскими claim полями.
//
// Токен удостоверяет вход владельца учетной записи компании: в claims
// хранятся email и уникальный идентификатор учетной записи.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	// GenerateToken создает токен для учетной записи с указанными email и uid.
	GenerateToken(email, accountUID string) (string, error)
	// ParseToken возвращает *CustomClaims с email и uid учетной записи.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
