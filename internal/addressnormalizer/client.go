// Package addressnormalizer содержит клиент внешнего сервиса нормализации
// почтовых адресов США. Сервис приводит адрес к стандартному виду и
// возвращает геокоординаты.
package addressnormalizer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/magabrotheeeer/vendor-directory/internal/models"
)

// ErrNoCandidates возвращается, когда сервис не нашел ни одного адреса.
var ErrNoCandidates = errors.New("address normalizer returned no candidates")

// Client — HTTP клиент сервиса нормализации адресов.
type Client struct {
	authID     string
	authToken  string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент сервиса нормализации.
func NewClient(authID, authToken string) *Client {
	return &Client{
		authID:     authID,
		authToken:  authToken,
		apiURL:     "https://us-street.api.addressnormalizer.example/street-address",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type candidate struct {
	DeliveryLine1 string `json:"delivery_line_1"`
	DeliveryLine2 string `json:"delivery_line_2"`
	Components    struct {
		CityName string `json:"city_name"`
		State    string `json:"state_abbreviation"`
		Zipcode  string `json:"zipcode"`
	} `json:"components"`
	Metadata struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"metadata"`
}

// Normalize приводит адрес к стандартному виду. Если сервис не нашел
// кандидатов, возвращается ErrNoCandidates — мягкая ошибка, форма адреса
// отправляется пользователю на повторную проверку.
func (c *Client) Normalize(ctx context.Context, street, streetTwo, city, state, zip string) (*models.NormalizedAddress, error) {
	query := url.Values{}
	query.Set("auth-id", c.authID)
	query.Set("auth-token", c.authToken)
	query.Set("street", street)
	query.Set("secondary", streetTwo)
	query.Set("city", city)
	query.Set("state", state)
	query.Set("zipcode", zip)
	query.Set("candidates", "1")

	req, err := http.NewRequestWithContext(ctx, "GET", c.apiURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("unexpected status: " + resp.Status)
	}

	var candidates []candidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	first := candidates[0]
	return &models.NormalizedAddress{
		Street1:   first.DeliveryLine1,
		Street2:   first.DeliveryLine2,
		City:      first.Components.CityName,
		State:     first.Components.State,
		Zip5:      first.Components.Zipcode,
		Latitude:  formatCoordinate(first.Metadata.Latitude),
		Longitude: formatCoordinate(first.Metadata.Longitude),
	}, nil
}

func formatCoordinate(value float64) string {
	if value == 0 {
		return ""
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
