package types

import (
	"errors"
	"fmt"
	"time"
)

// TimeString время дня в формате "HH:MM"
// Используется для рабочих часов станций и времени начала слотов
type TimeString string

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")
)

const timeStringLayout = "15:04"

// parseTimeString принимает только каноничную форму "HH:MM" с ведущими
// нулями: time.Parse разбирает и "9:00", но такие значения ломают
// лексикографическое сравнение времён
func parseTimeString(s string) (time.Time, error) {
	parsed, err := time.Parse(timeStringLayout, s)
	if err != nil || parsed.Format(timeStringLayout) != s {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return parsed, nil
}

// NewTimeString создает TimeString из time.Time (отбрасывает дату и секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeStringLayout))
}

// NewTimeStringFromString парсит строку "HH:MM" в TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	if _, err := parseTimeString(s); err != nil {
		return "", err
	}
	return TimeString(s), nil
}

// String возвращает строковое представление времени
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет, что значение соответствует формату "HH:MM"
func (t TimeString) Validate() error {
	_, err := parseTimeString(string(t))
	return err
}

// Minutes возвращает время дня в минутах от полуночи
func (t TimeString) Minutes() (int, error) {
	parsed, err := parseTimeString(string(t))
	if err != nil {
		return 0, err
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes возвращает время, сдвинутое на minutes минут вперед
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	parsed, err := parseTimeString(string(t))
	if err != nil {
		return "", err
	}
	return TimeString(parsed.Add(time.Duration(minutes) * time.Minute).Format(timeStringLayout)), nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// OnDate совмещает время дня с датой date в локации даты
func (t TimeString) OnDate(date time.Time) (time.Time, error) {
	parsed, err := parseTimeString(string(t))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, date.Location()), nil
}
