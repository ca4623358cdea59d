// Package checks содержит чистые проверки форм и профиля компании.
// Каждая функция — тотальный предикат без побочных эффектов: некорректный
// ввод — это обычный результат false, а не ошибка.
package checks

import (
	"github.com/nbutton23/zxcvbn-go"
	"github.com/nyaruka/phonenumbers"

	"github.com/magabrotheeeer/vendor-directory/internal/models"
)

// AreAllAccountPropertiesFilled проверяет, будет ли профиль полностью
// заполнен после текущего редактирования. Из снимка профиля убираются три
// всегда необязательных поля, затем поля, не относящиеся к текущему
// редактированию: все адресные поля при изменении адреса, иначе само
// редактируемое поле (кроме формы услуг). Если любое из оставшихся полей
// пустое — false. Вне формы услуг дополнительно требуется хотя бы одна
// включенная услуга.
func AreAllAccountPropertiesFilled(draft models.ProfileDraft, currentField string) bool {
	fields := draft.TextFields()

	// Эти три поля могут быть пустыми всегда.
	delete(fields, models.FieldCompanyDescription)
	delete(fields, models.FieldCompanyStreetTwo)
	delete(fields, models.FieldCompanyWebsite)

	// Текущее поле еще не записано в снимок, поэтому ему разрешено быть пустым.
	if currentField == models.FieldCompanyAddress {
		delete(fields, models.FieldCompanyCity)
		delete(fields, models.FieldCompanyState)
		delete(fields, models.FieldCompanyStreet)
		delete(fields, models.FieldCompanyZip)
		delete(fields, models.FieldCompanyLatitude)
		delete(fields, models.FieldCompanyLongitude)
	} else if currentField != models.FieldCompanyServices {
		delete(fields, currentField)
	}

	for _, value := range fields {
		if value == "" {
			return false
		}
	}

	// Услуги проверяются отдельно. На форме услуг сюда не попасть с пустым
	// набором: ее отклонила бы проверка IsAtLeastOneServiceFilled.
	if currentField != models.FieldCompanyServices {
		return draft.Services.Any()
	}

	return true
}

// DoAnyServicesHaveValue возвращает true, если включена хотя бы одна услуга.
func DoAnyServicesHaveValue(services models.ServiceFlags) bool {
	return services.Any()
}

// IsAllContentGenuine проверяет, что каждый ключ отправленной формы входит
// в список ожидаемых полей. Лишний ключ отклоняет всю отправку.
func IsAllContentGenuine(defaultSubmissionFields []string, submission map[string]string) bool {
	for key := range submission {
		isKeyGenuine := false
		for _, field := range defaultSubmissionFields {
			if field == key {
				isKeyGenuine = true
				break
			}
		}
		if !isKeyGenuine {
			return false
		}
	}
	return true
}

// IsAllContentSubmitted проверяет, что каждое ожидаемое поле присутствует
// в отправленной форме.
func IsAllContentSubmitted(defaultSubmissionFields []string, submission map[string]string) bool {
	for _, field := range defaultSubmissionFields {
		if _, ok := submission[field]; !ok {
			return false
		}
	}
	return true
}

// IsAtLeastOneServiceFilled возвращает true, если в очищенной форме включена
// хотя бы одна услуга из перечня.
func IsAtLeastOneServiceFilled(cleanedSubmission map[string]any) bool {
	for _, service := range models.ListOfServices() {
		if cleanedSubmission[string(service)] == true {
			return true
		}
	}
	return false
}

// IsAddressNormalized сравнивает нормализованный адрес с введенным
// пользователем, поле за полем.
func IsAddressNormalized(street, streetTwo, city, state, zip string, normalized models.NormalizedAddress) bool {
	return normalized.Street1 == street &&
		normalized.Street2 == streetTwo &&
		normalized.City == city &&
		normalized.State == state &&
		normalized.Zip5 == zip
}

// IsPhoneValid проверяет телефон компании. Номер отклоняется, если
// библиотека нормализации не находит кандидатов, а также если первая цифра
// 0 или 1 — в плане нумерации NANP номер не может с них начинаться.
func IsPhoneValid(phone string) bool {
	number, err := phonenumbers.Parse(phone, "US")
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return false
	}
	if phone[0] == '0' || phone[0] == '1' {
		return false
	}
	return true
}

// AreServicesUnchanged возвращает true, если значение каждой отправленной
// услуги совпадает с сохраненным. Используется для отсечения пустых
// обновлений.
func AreServicesUnchanged(stored, submitted models.ServiceFlags) bool {
	for key, value := range submitted {
		if value != stored[key] {
			return false
		}
	}
	return true
}

// IsStateValid проверяет принадлежность кода штата фиксированному набору:
// 50 штатов, округ Колумбия и пустая строка для бесплатных учетных записей.
func IsStateValid(state string) bool {
	states := []string{
		"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA",
		"HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD",
		"MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
		"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC",
		"SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
		"DC", "",
	}
	for _, s := range states {
		if s == state {
			return true
		}
	}
	return false
}

// IsDeletePropertyCorrectlySet проверяет служебное поле deleteProperty:
// если оно присутствует, значение должно быть строго "true" или "false".
// Отсутствующее поле корректно.
func IsDeletePropertyCorrectlySet(submission map[string]string) bool {
	if value := submission[models.FieldDeleteProperty]; value != "" {
		return value == "true" || value == "false"
	}
	return true
}

// DoesPasswordMeetRequirements проверяет стойкость пароля по шкале zxcvbn
// от 0 до 4. Принимаются пароли с оценкой не ниже 2.
func DoesPasswordMeetRequirements(password string) bool {
	return zxcvbn.PasswordStrength(password, nil).Score >= 2
}

// AreServiceValuesValid проверяет, что каждая услуга из перечня представлена
// в очищенной форме строго булевым значением. Строка "true" — не значение.
func AreServiceValuesValid(cleanedSubmission map[string]any) bool {
	for _, service := range models.ListOfServices() {
		value := cleanedSubmission[string(service)]
		if value != true && value != false {
			return false
		}
	}
	return true
}

// IsUpgradeExpirationSoon определяет, попадает ли срок платного размещения
// в окно напоминаний. Отрицательное число дней означает бесплатную учетную
// запись.
func IsUpgradeExpirationSoon(numberOfDaysUntilExpiration, firstAlertBeforeExpiration int) bool {
	if numberOfDaysUntilExpiration < 0 {
		return false
	}
	if numberOfDaysUntilExpiration > firstAlertBeforeExpiration {
		return false
	}
	return true
}

// WereServicesAdded возвращает true, если все отправленные услуги новые.
// Если любая из них уже включена в сохраненной записи, это обновление
// существующего набора, а не добавление.
func WereServicesAdded(services []models.Service, stored models.ServiceFlags) bool {
	for _, service := range services {
		if stored[service] {
			return false
		}
	}
	return true
}
