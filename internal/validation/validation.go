// Package validation содержит проверки входных данных на наличие и допустимый диапазон.
package validation

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)`)

// Error описывает ошибку пользовательского ввода. Сообщение показывается пользователю как есть.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Errorf создаёт ошибку ввода с указанным сообщением.
func Errorf(message string) error {
	return &Error{Message: message}
}

// IsValidationError сообщает, является ли err ошибкой пользовательского ввода.
func IsValidationError(err error) bool {
	var vErr *Error
	return errors.As(err, &vErr)
}

// Message возвращает сообщение ошибки ввода или пустую строку.
func Message(err error) string {
	var vErr *Error
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	return ""
}

// AllPresent проверяет, что ни одно из значений не пустое после обрезки пробелов.
func AllPresent(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// ParsePositiveInt разбирает строку как целое число больше нуля.
// Дробные числа и числа с посторонними символами отклоняются.
func ParsePositiveInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, ch := range s {
		if !unicode.IsDigit(ch) {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// LeadingInt разбирает целое число в начале строки:
// "50 kg" даёт 50, строка без цифр в начале отклоняется.
func LeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// LeadingDecimal разбирает десятичное число в начале строки: "6.5%" даёт 6.5.
func LeadingDecimal(s string) (decimal.Decimal, bool) {
	num := leadingNumber.FindString(strings.TrimSpace(s))
	if num == "" {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(strings.TrimSuffix(num, "."))
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}
