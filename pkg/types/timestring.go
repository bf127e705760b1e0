package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// timeLayout формат времени HH:MM (24 часа)
const timeLayout = "15:04"

var (
	// ErrInvalidTimeFormat возвращается при некорректном формате времени
	ErrInvalidTimeFormat = errors.New("invalid time string format")

	// ErrInvalidScanType возвращается при попытке сканировать несовместимый тип из БД
	ErrInvalidScanType = errors.New("unsupported scan type for TimeString")
)

// TimeString время суток в формате "HH:MM".
// Используется как ключ слота: сравнение выполняется строго посимвольно,
// поэтому значение всегда должно быть нормализовано через конструкторы.
type TimeString string

// NewTimeString создает TimeString из time.Time (отбрасывает секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку "HH:MM" в TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return TimeString(t.Format(timeLayout)), nil
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
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return nil
}

// Minutes возвращает время в минутах от начала суток
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes возвращает новое время, сдвинутое на m минут вперед.
// Переход через полночь не поддерживается - возвращается ошибка.
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	total, err := t.Minutes()
	if err != nil {
		return "", err
	}

	total += m
	if total < 0 || total >= 24*60 {
		return "", fmt.Errorf("%w: %q + %d minutes is out of day range", ErrInvalidTimeFormat, string(t), m)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore возвращает true, если t раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter возвращает true, если t позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// OnDate совмещает время с датой в единый момент времени.
// Используется для сравнения слота с текущим моментом.
func (t TimeString) OnDate(date time.Time) (time.Time, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0,
		date.Location(),
	), nil
}

// Value реализует driver.Valuer для записи в БД
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД.
// Поддерживает string, []byte и time.Time (колонки типа TIME).
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		parsed, err := NewTimeStringFromString(trimSeconds(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(trimSeconds(string(v)))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrInvalidScanType, src)
	}
}

// trimSeconds отбрасывает секунды из значения "HH:MM:SS", которое
// возвращает Postgres для колонок типа TIME
func trimSeconds(s string) string {
	if len(s) >= 5 {
		return s[:5]
	}
	return s
}
