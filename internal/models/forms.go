package models

// Имена редактируемых полей профиля. Совпадают с именами полей веб-формы,
// на них же ссылаются проверки заполненности профиля.
const (
	FieldEmail              = "email"
	FieldCompanyName        = "companyName"
	FieldCompanyDescription = "companyDescription"
	FieldCompanyPhone       = "companyPhone"
	FieldCompanyWebsite     = "companyWebsite"
	FieldCompanyAddress     = "companyAddress"
	FieldCompanyStreet      = "companyStreet"
	FieldCompanyStreetTwo   = "companyStreetTwo"
	FieldCompanyCity        = "companyCity"
	FieldCompanyState       = "companyState"
	FieldCompanyZip         = "companyZip"
	FieldCompanyLatitude    = "companyLatitude"
	FieldCompanyLongitude   = "companyLongitude"
	FieldCompanyServices    = "companyServices"
	FieldDeleteProperty     = "deleteProperty"
)

// Списки ожидаемых полей для каждой формы. Используются проверками
// IsAllContentGenuine и IsAllContentSubmitted: лишний ключ или отсутствующий
// ключ отклоняют всю отправку.
var (
	// AddChangeCompanyAddressFields — форма изменения адреса компании.
	AddChangeCompanyAddressFields = []string{
		FieldCompanyStreet,
		FieldCompanyStreetTwo,
		FieldCompanyCity,
		FieldCompanyState,
		FieldCompanyZip,
		FieldDeleteProperty,
	}

	// AddChangeCompanyNameFields — форма изменения названия компании.
	AddChangeCompanyNameFields = []string{
		FieldCompanyName,
		FieldDeleteProperty,
	}

	// AddChangeCompanyDescriptionFields — форма изменения описания компании.
	AddChangeCompanyDescriptionFields = []string{
		FieldCompanyDescription,
		FieldDeleteProperty,
	}

	// AddChangeCompanyPhoneFields — форма изменения телефона компании.
	AddChangeCompanyPhoneFields = []string{
		FieldCompanyPhone,
		FieldDeleteProperty,
	}

	// AddChangeCompanyServicesFields — форма изменения списка услуг.
	AddChangeCompanyServicesFields = appendServiceFields([]string{FieldDeleteProperty})

	// AddChangeCompanyWebsiteFields — форма изменения сайта компании.
	AddChangeCompanyWebsiteFields = []string{
		FieldCompanyWebsite,
		FieldDeleteProperty,
	}

	// ChangeEmailFields — форма смены электронной почты.
	ChangeEmailFields = []string{
		FieldEmail,
		"emailConfirmation",
		"currentPassword",
	}

	// ChangePasswordFields — форма смены пароля.
	ChangePasswordFields = []string{
		"currentPassword",
		"newPassword",
		"newPasswordConfirmation",
	}

	// RegisterFields — форма регистрации.
	RegisterFields = []string{
		FieldEmail,
		"password",
		"passwordConfirmation",
	}
)

func appendServiceFields(extra []string) []string {
	fields := make([]string, 0, len(extra)+11)
	for _, service := range ListOfServices() {
		fields = append(fields, string(service))
	}
	return append(fields, extra...)
}
