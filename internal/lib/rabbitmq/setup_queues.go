package rabbitmq

// QueueConfig связывает имя очереди с ключом маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// Ключи маршрутизации уведомлений об окончании платного размещения.
const (
	RoutingKeyFirstAlert  = "reminder.first"
	RoutingKeySecondAlert = "reminder.second"
	RoutingKeyFinalAlert  = "reminder.final"
	RoutingKeyExpired     = "premium.expired"
)

// GetNotificationQueues возвращает очереди напоминаний, которые потребляет
// сервис отправки писем.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "notification.reminder.first", RoutingKey: RoutingKeyFirstAlert},
		{QueueName: "notification.reminder.second", RoutingKey: RoutingKeySecondAlert},
		{QueueName: "notification.reminder.final", RoutingKey: RoutingKeyFinalAlert},
		{QueueName: "notification.premium.expired", RoutingKey: RoutingKeyExpired},
	}
}
