package models

// NormalizedAddress — адрес, приведенный к стандартному виду внешним
// сервисом нормализации, вместе с геокоординатами.
type NormalizedAddress struct {
	Street1   string `json:"street1"`
	Street2   string `json:"street2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip5      string `json:"zip5"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}
