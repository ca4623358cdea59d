package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/vendor-directory/internal/models"
)

func completeDraft() models.ProfileDraft {
	return models.ProfileDraft{
		Email:            "owner@example.com",
		CompanyName:      "Acme Property Services",
		CompanyPhone:     "5035551234",
		CompanyStreet:    "100 Main St",
		CompanyCity:      "Portland",
		CompanyState:     "OR",
		CompanyZip:       "97201",
		CompanyLatitude:  "45.5",
		CompanyLongitude: "-122.6",
		Services: models.ServiceFlags{
			models.ServiceLockChanges: true,
		},
	}
}

func TestAreAllAccountPropertiesFilled(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(*models.ProfileDraft)
		currentField string
		want         bool
	}{
		{
			name:         "complete profile",
			mutate:       func(*models.ProfileDraft) {},
			currentField: models.FieldCompanyPhone,
			want:         true,
		},
		{
			name: "optional fields may be empty",
			mutate: func(d *models.ProfileDraft) {
				d.CompanyDescription = ""
				d.CompanyStreetTwo = ""
				d.CompanyWebsite = ""
			},
			currentField: models.FieldCompanyPhone,
			want:         true,
		},
		{
			name: "missing name fails",
			mutate: func(d *models.ProfileDraft) {
				d.CompanyName = ""
			},
			currentField: models.FieldCompanyPhone,
			want:         false,
		},
		{
			name: "current field may be empty",
			mutate: func(d *models.ProfileDraft) {
				d.CompanyPhone = ""
			},
			currentField: models.FieldCompanyPhone,
			want:         true,
		},
		{
			name: "address edit ignores all address fields",
			mutate: func(d *models.ProfileDraft) {
				d.CompanyStreet = ""
				d.CompanyCity = ""
				d.CompanyState = ""
				d.CompanyZip = ""
				d.CompanyLatitude = ""
				d.CompanyLongitude = ""
			},
			currentField: models.FieldCompanyAddress,
			want:         true,
		},
		{
			name: "non-address edit still requires address",
			mutate: func(d *models.ProfileDraft) {
				d.CompanyStreet = ""
			},
			currentField: models.FieldCompanyPhone,
			want:         false,
		},
		{
			name: "no services fails outside services form",
			mutate: func(d *models.ProfileDraft) {
				d.Services = models.ServiceFlags{}
			},
			currentField: models.FieldCompanyPhone,
			want:         false,
		},
		{
			name: "services form does not require stored services",
			mutate: func(d *models.ProfileDraft) {
				d.Services = models.ServiceFlags{}
			},
			currentField: models.FieldCompanyServices,
			want:         true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := completeDraft()
			tt.mutate(&draft)
			assert.Equal(t, tt.want, AreAllAccountPropertiesFilled(draft, tt.currentField))
		})
	}
}

func TestDoAnyServicesHaveValue(t *testing.T) {
	assert.False(t, DoAnyServicesHaveValue(models.ServiceFlags{}))
	assert.False(t, DoAnyServicesHaveValue(models.ServiceFlags{
		models.ServicePoolMaintenance: false,
	}))
	assert.True(t, DoAnyServicesHaveValue(models.ServiceFlags{
		models.ServicePoolMaintenance: true,
	}))
}

func TestIsAllContentGenuine(t *testing.T) {
	fields := []string{"a", "b"}

	assert.True(t, IsAllContentGenuine(fields, map[string]string{"a": "1", "b": "2"}))
	assert.True(t, IsAllContentGenuine(fields, map[string]string{"a": "1"}))
	assert.True(t, IsAllContentGenuine(fields, map[string]string{}))
	assert.False(t, IsAllContentGenuine(fields, map[string]string{"a": "1", "extra": "2"}))
}

func TestIsAllContentSubmitted(t *testing.T) {
	fields := []string{"a", "b"}

	assert.True(t, IsAllContentSubmitted(fields, map[string]string{"a": "1", "b": ""}))
	assert.False(t, IsAllContentSubmitted(fields, map[string]string{"a": "1"}))
	assert.True(t, IsAllContentSubmitted(nil, map[string]string{}))
}

func TestIsAtLeastOneServiceFilled(t *testing.T) {
	assert.False(t, IsAtLeastOneServiceFilled(map[string]any{}))
	assert.False(t, IsAtLeastOneServiceFilled(map[string]any{
		string(models.ServiceLockChanges): false,
	}))
	// Строка "true" не считается включенной услугой.
	assert.False(t, IsAtLeastOneServiceFilled(map[string]any{
		string(models.ServiceLockChanges): "true",
	}))
	assert.True(t, IsAtLeastOneServiceFilled(map[string]any{
		string(models.ServiceLockChanges): true,
	}))
}

func TestIsAddressNormalized(t *testing.T) {
	normalized := models.NormalizedAddress{
		Street1: "100 Main St",
		Street2: "",
		City:    "Portland",
		State:   "OR",
		Zip5:    "97201",
	}

	assert.True(t, IsAddressNormalized("100 Main St", "", "Portland", "OR", "97201", normalized))
	assert.False(t, IsAddressNormalized("100 Main Street", "", "Portland", "OR", "97201", normalized))
	assert.False(t, IsAddressNormalized("100 Main St", "", "Portland", "OR", "97202", normalized))
}

func TestIsPhoneValid(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  bool
	}{
		{name: "valid number", phone: "5036871234", want: true},
		{name: "valid formatted number", phone: "(503) 687-1234", want: true},
		{name: "too short", phone: "50368712", want: false},
		{name: "letters", phone: "phone", want: false},
		{name: "leading zero", phone: "0536871234", want: false},
		{name: "leading one", phone: "1536871234", want: false},
		{name: "empty", phone: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPhoneValid(tt.phone))
		})
	}
}

func TestAreServicesUnchanged(t *testing.T) {
	stored := models.ServiceFlags{
		models.ServiceLockChanges:     true,
		models.ServicePoolMaintenance: false,
	}

	assert.True(t, AreServicesUnchanged(stored, models.ServiceFlags{
		models.ServiceLockChanges:     true,
		models.ServicePoolMaintenance: false,
	}))
	assert.False(t, AreServicesUnchanged(stored, models.ServiceFlags{
		models.ServiceLockChanges:     true,
		models.ServicePoolMaintenance: true,
	}))
	assert.False(t, AreServicesUnchanged(stored, models.ServiceFlags{
		models.ServiceLockChanges: false,
	}))
}

func TestIsStateValid(t *testing.T) {
	assert.True(t, IsStateValid("OR"))
	assert.True(t, IsStateValid("DC"))
	assert.True(t, IsStateValid(""))
	assert.False(t, IsStateValid("or"))
	assert.False(t, IsStateValid("ZZ"))
	assert.False(t, IsStateValid("Oregon"))
}

func TestIsDeletePropertyCorrectlySet(t *testing.T) {
	assert.True(t, IsDeletePropertyCorrectlySet(map[string]string{}))
	assert.True(t, IsDeletePropertyCorrectlySet(map[string]string{models.FieldDeleteProperty: ""}))
	assert.True(t, IsDeletePropertyCorrectlySet(map[string]string{models.FieldDeleteProperty: "true"}))
	assert.True(t, IsDeletePropertyCorrectlySet(map[string]string{models.FieldDeleteProperty: "false"}))
	assert.False(t, IsDeletePropertyCorrectlySet(map[string]string{models.FieldDeleteProperty: "yes"}))
	assert.False(t, IsDeletePropertyCorrectlySet(map[string]string{models.FieldDeleteProperty: "TRUE"}))
}

func TestDoesPasswordMeetRequirements(t *testing.T) {
	assert.False(t, DoesPasswordMeetRequirements(""))
	assert.False(t, DoesPasswordMeetRequirements("password"))
	assert.False(t, DoesPasswordMeetRequirements("123456"))
	assert.True(t, DoesPasswordMeetRequirements("correct horse battery staple"))
	assert.True(t, DoesPasswordMeetRequirements("mX9#kQ2p"))
}

func TestAreServiceValuesValid(t *testing.T) {
	allBool := make(map[string]any)
	for _, service := range models.ListOfServices() {
		allBool[string(service)] = false
	}
	allBool[string(models.ServiceLockChanges)] = true
	assert.True(t, AreServiceValuesValid(allBool))

	withString := make(map[string]any)
	for key, value := range allBool {
		withString[key] = value
	}
	withString[string(models.ServicePoolMaintenance)] = "true"
	assert.False(t, AreServiceValuesValid(withString))

	// Отсутствующий ключ тоже не булево значение.
	assert.False(t, AreServiceValuesValid(map[string]any{}))
}

func TestIsUpgradeExpirationSoon(t *testing.T) {
	tests := []struct {
		name      string
		days      int
		threshold int
		want      bool
	}{
		{name: "free account", days: -1, threshold: 30, want: false},
		{name: "expires today", days: 0, threshold: 30, want: true},
		{name: "inside window", days: 15, threshold: 30, want: true},
		{name: "window boundary", days: 30, threshold: 30, want: true},
		{name: "outside window", days: 31, threshold: 30, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUpgradeExpirationSoon(tt.days, tt.threshold))
		})
	}
}

func TestWereServicesAdded(t *testing.T) {
	stored := models.ServiceFlags{
		models.ServiceLockChanges: true,
	}

	assert.True(t, WereServicesAdded([]models.Service{models.ServicePoolMaintenance}, stored))
	assert.False(t, WereServicesAdded([]models.Service{
		models.ServicePoolMaintenance,
		models.ServiceLockChanges,
	}, stored))
	assert.True(t, WereServicesAdded(nil, stored))
	assert.True(t, WereServicesAdded([]models.Service{models.ServiceLockChanges}, models.ServiceFlags{}))
}
