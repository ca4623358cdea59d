// Package days содержит вспомогательный подсчет календарных дней между датами.
package days

import "time"

// Until считает количество календарных дней от from до to, игнорируя время
// суток. Дата в прошлом дает отрицательное число, сегодняшняя дата — ноль.
func Until(from, to time.Time) int {
	fromDate := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDate := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toDate.Sub(fromDate).Hours() / 24)
}
