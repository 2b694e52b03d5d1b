// internal/validate/validate.go
//
// Input predicates shared by the welcome form and the booking form.
// Both forms must enforce identical rules; keeping them here is what
// guarantees that.

package validate

import (
	"regexp"
	"strings"
	"time"
)

// Indian mobile numbering: exactly 10 digits, leading digit 6-9.
var phonePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)

// Letters and whitespace only. No digits or punctuation.
var namePattern = regexp.MustCompile(`^[A-Za-z\s]+$`)

// Phone reports whether value is a valid Indian mobile number.
func Phone(value string) bool {
	return phonePattern.MatchString(value)
}

// Name reports whether value is a usable lead name: non-empty after
// trimming and made of letters and spaces.
func Name(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed != "" && namePattern.MatchString(trimmed)
}

// Callback slots are only booked inside business hours.
const (
	openingHour = 11
	closingHour = 17
)

// Slot is a preferred callback date and time in LMS wire format.
type Slot struct {
	Date string // 2006-01-02
	Time string // 15:04
}

// CallbackSlot derives the default callback slot from now: one hour ahead
// rounded up to the half hour when that lands inside weekday business
// hours, otherwise opening time on the next business day. Deterministic
// given now.
func CallbackSlot(now time.Time) Slot {
	slot := roundUpHalfHour(now.Add(time.Hour))
	for {
		switch {
		case slot.Weekday() == time.Saturday || slot.Weekday() == time.Sunday:
			slot = atOpening(slot.AddDate(0, 0, 1))
		case slot.Hour() < openingHour:
			slot = atOpening(slot)
		case slot.Hour() >= closingHour:
			slot = atOpening(slot.AddDate(0, 0, 1))
		default:
			return Slot{Date: slot.Format("2006-01-02"), Time: slot.Format("15:04")}
		}
	}
}

func roundUpHalfHour(t time.Time) time.Time {
	t = t.Truncate(time.Minute)
	switch m := t.Minute(); {
	case m == 0 || m == 30:
		return t
	case m < 30:
		return t.Add(time.Duration(30-m) * time.Minute)
	default:
		return t.Add(time.Duration(60-m) * time.Minute)
	}
}

func atOpening(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), openingHour, 0, 0, 0, t.Location())
}
