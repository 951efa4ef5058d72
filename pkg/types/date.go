// Package types содержит общие типы для работы с календарными датами.
// Бронирование рекламных слотов оперирует только датами (без времени суток),
// поэтому все сравнения выполняются после обнуления времени.
package types

import (
	"fmt"
	"time"
)

// DateFormat формат календарной даты (YYYY-MM-DD)
const DateFormat = "2006-01-02"

// DateString строковое представление календарной даты в формате YYYY-MM-DD
type DateString string

// NewDateString создает DateString из time.Time
func NewDateString(t time.Time) DateString {
	return DateString(t.Format(DateFormat))
}

// ParseDateString парсит строку YYYY-MM-DD в time.Time (полночь, локация сохраняется UTC)
func ParseDateString(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date string format: %v", err)
	}
	return t, nil
}

// String возвращает строковое представление даты
func (d DateString) String() string {
	return string(d)
}

// Validate проверяет корректность формата даты
func (d DateString) Validate() error {
	_, err := ParseDateString(string(d))
	return err
}

// DateOnly обнуляет время суток и нормализует локацию к UTC.
// Календарная дата не зависит от серверного пояса: окно бронирования,
// распарсенные запросы и значения из БД сравниваются в одной локации.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay проверяет, что две даты относятся к одному и тому же дню
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateBefore проверяет, что дата a раньше даты b (сравнение только по дням)
func DateBefore(a, b time.Time) bool {
	return DateOnly(a).Before(DateOnly(b))
}

// DateAfter проверяет, что дата a позже даты b (сравнение только по дням)
func DateAfter(a, b time.Time) bool {
	return DateOnly(a).After(DateOnly(b))
}
