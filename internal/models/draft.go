package models

// ProfileDraft — сериализуемый снимок редактируемых полей профиля.
// Передается по значению между шагами изменения профиля, чтобы формы не
// зависели от скрытого состояния сессии.
type ProfileDraft struct {
	Email              string       `json:"email"`
	CompanyName        string       `json:"companyName"`
	CompanyDescription string       `json:"companyDescription"`
	CompanyPhone       string       `json:"companyPhone"`
	CompanyWebsite     string       `json:"companyWebsite"`
	CompanyStreet      string       `json:"companyStreet"`
	CompanyStreetTwo   string       `json:"companyStreetTwo"`
	CompanyCity        string       `json:"companyCity"`
	CompanyState       string       `json:"companyState"`
	CompanyZip         string       `json:"companyZip"`
	CompanyLatitude    string       `json:"companyLatitude"`
	CompanyLongitude   string       `json:"companyLongitude"`
	Services           ServiceFlags `json:"services"`
}

// DraftFromAccount строит черновик профиля из сохраненной учетной записи.
func DraftFromAccount(a *Account) ProfileDraft {
	return ProfileDraft{
		Email:              a.Email,
		CompanyName:        a.CompanyName,
		CompanyDescription: a.CompanyDescription,
		CompanyPhone:       a.CompanyPhone,
		CompanyWebsite:     a.CompanyWebsite,
		CompanyStreet:      a.CompanyStreet,
		CompanyStreetTwo:   a.CompanyStreetTwo,
		CompanyCity:        a.CompanyCity,
		CompanyState:       a.CompanyState,
		CompanyZip:         a.CompanyZip,
		CompanyLatitude:    a.CompanyLatitude,
		CompanyLongitude:   a.CompanyLongitude,
		Services:           a.Services.Clone(),
	}
}

// TextFields возвращает текстовые поля черновика, ключ — имя поля формы.
func (d ProfileDraft) TextFields() map[string]string {
	return map[string]string{
		FieldEmail:              d.Email,
		FieldCompanyName:        d.CompanyName,
		FieldCompanyDescription: d.CompanyDescription,
		FieldCompanyPhone:       d.CompanyPhone,
		FieldCompanyWebsite:     d.CompanyWebsite,
		FieldCompanyStreet:      d.CompanyStreet,
		FieldCompanyStreetTwo:   d.CompanyStreetTwo,
		FieldCompanyCity:        d.CompanyCity,
		FieldCompanyState:       d.CompanyState,
		FieldCompanyZip:         d.CompanyZip,
		FieldCompanyLatitude:    d.CompanyLatitude,
		FieldCompanyLongitude:   d.CompanyLongitude,
	}
}
