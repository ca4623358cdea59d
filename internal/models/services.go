package models

// Service — тип для перечисления услуг, которые может предлагать компания.
type Service string

// Полный перечень услуг каталога. Значения совпадают с именами полей формы.
const (
	ServiceBoardingSecuring              Service = "boardingSecuring"
	ServiceDebrisRemovalTrashout         Service = "debrisRemovalTrashout"
	ServiceEvictionManagement            Service = "evictionManagement"
	ServiceFieldInspection               Service = "fieldInspection"
	ServiceHandymanGeneralMaintenance    Service = "handymanGeneralMaintenance"
	ServiceLandscapeMaintenance          Service = "landscapeMaintenance"
	ServiceLockChanges                   Service = "lockChanges"
	ServiceOverseePropertyRehabilitation Service = "overseePropertyRehabilitation"
	ServicePoolMaintenance               Service = "poolMaintenance"
	ServicePropertyCleaning              Service = "propertyCleaning"
	ServiceWinterizations                Service = "winterizations"
)

// ListOfServices возвращает список всех услуг в фиксированном порядке.
func ListOfServices() []Service {
	return []Service{
		ServiceBoardingSecuring,
		ServiceDebrisRemovalTrashout,
		ServiceEvictionManagement,
		ServiceFieldInspection,
		ServiceHandymanGeneralMaintenance,
		ServiceLandscapeMaintenance,
		ServiceLockChanges,
		ServiceOverseePropertyRehabilitation,
		ServicePoolMaintenance,
		ServicePropertyCleaning,
		ServiceWinterizations,
	}
}

// ServiceFlags хранит набор флагов услуг компании, ключ — услуга из перечня.
// Отсутствующий ключ эквивалентен false.
type ServiceFlags map[Service]bool

// Clone возвращает независимую копию набора флагов.
func (f ServiceFlags) Clone() ServiceFlags {
	c := make(ServiceFlags, len(f))
	for k, v := range f {
		c[k] = v
	}
	return c
}

// Any возвращает true, если хотя бы одна услуга включена.
func (f ServiceFlags) Any() bool {
	for _, service := range ListOfServices() {
		if f[service] {
			return true
		}
	}
	return false
}
