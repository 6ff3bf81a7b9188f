package pii

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tmcf/custaudit/internal/dataset"
)

const (
	unknownMarker = "[UNKNOWN]"
	maskedAddress = "[MASKED ADDRESS]"
)

var maskNonDigits = regexp.MustCompile(`\D`)

// MaskName keeps the first letter: "John" -> "J***".
func MaskName(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || trimmed == unknownMarker {
		return value
	}
	return firstRune(trimmed) + "***"
}

// firstRune keeps a whole leading character, never a byte slice of one.
func firstRune(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	return string(r)
}

// MaskEmail keeps the first letter of the local part and the full domain:
// "john.doe@gmail.com" -> "j***@gmail.com".
func MaskEmail(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return value
	}
	at := strings.LastIndex(trimmed, "@")
	if at < 0 {
		return trimmed
	}
	local, domain := trimmed[:at], trimmed[at+1:]
	if local == "" {
		return "***@" + domain
	}
	return fmt.Sprintf("%s***@%s", firstRune(local), domain)
}

// MaskPhone keeps the last four digits: "555-123-4567" -> "***-***-4567".
func MaskPhone(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return value
	}
	digits := maskNonDigits.ReplaceAllString(trimmed, "")
	if len(digits) >= 4 {
		return "***-***-" + digits[len(digits)-4:]
	}
	return "***-***-****"
}

// MaskBirthDate keeps the year: "1985-03-15" -> "1985-**-**".
func MaskBirthDate(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || trimmed == unknownMarker {
		return value
	}
	if runes := []rune(trimmed); len(runes) >= 4 {
		return string(runes[:4]) + "-**-**"
	}
	return trimmed
}

// MaskAddress replaces the whole value.
func MaskAddress(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || trimmed == unknownMarker {
		return value
	}
	return maskedAddress
}

// Mask returns a masked copy of the dataset with every PII field transformed.
// Business fields (income, account status, created date) stay intact.
func Mask(ds *dataset.Dataset) *dataset.Dataset {
	out := ds.Clone()

	transforms := []struct {
		field string
		apply func(string) string
	}{
		{dataset.FieldFirstName, MaskName},
		{dataset.FieldLastName, MaskName},
		{dataset.FieldEmail, MaskEmail},
		{dataset.FieldPhone, MaskPhone},
		{dataset.FieldDateOfBirth, MaskBirthDate},
		{dataset.FieldAddress, MaskAddress},
	}

	for _, t := range transforms {
		if !out.HasField(t.field) {
			continue
		}
		for i := 0; i < out.Len(); i++ {
			value, present := out.Record(i).Value(t.field)
			if !present {
				continue
			}
			out.Set(i, t.field, t.apply(value))
		}
	}

	return out
}
