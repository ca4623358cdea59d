package paymentprovider

import "time"

// CreateCheckoutSessionRequest представляет запрос на создание checkout-сессии.
type CreateCheckoutSessionRequest struct {
	Amount struct {
		Value    string `json:"value"`    // сумма, например "36.00"
		Currency string `json:"currency"` // валюта, например "USD"
	} `json:"amount"`
	Description string            `json:"description"`
	SuccessURL  string            `json:"success_url"`
	CancelURL   string            `json:"cancel_url"`
	Metadata    map[string]string `json:"metadata,omitempty"` // account_uid и пр.
}

// CreateCheckoutSessionResponse представляет ответ на создание checkout-сессии.
type CreateCheckoutSessionResponse struct {
	ID        string    `json:"id"`     // ID сессии у провайдера
	Status    string    `json:"status"` // статус сессии, например "open"
	URL       string    `json:"url"`    // адрес страницы оплаты
	CreatedAt time.Time `json:"created_at"`
}
