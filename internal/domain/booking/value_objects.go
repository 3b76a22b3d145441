package booking

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

const (
	MinNameLength        = 3
	MinTitleLength       = 3
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

var (
	ErrInvalidRange       = errors.New("end time must be after start time")
	ErrPastDate           = errors.New("start time cannot be in the past")
	ErrDurationExceeded   = errors.New("booking duration exceeds the maximum")
	ErrNameTooShort       = errors.New("creator name is too short")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrEmailDomainBlocked = errors.New("email domain is not allowed")
	ErrTitleLength        = errors.New("title length is out of bounds")
	ErrDescriptionTooLong = errors.New("description is too long")
)

// TimeSlot is a half-open interval [start, end). Two slots that merely touch
// at a boundary instant do not overlap, so back-to-back bookings are allowed.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !end.After(start) {
		return TimeSlot{}, ErrInvalidRange
	}
	return TimeSlot{start: start, end: end}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && ts.end.After(other.start)
}

// OnDay rebuilds the slot on another calendar day, keeping the original
// time-of-day and duration. Used to turn an expanded recurrence date into a
// concrete occurrence interval.
func (ts TimeSlot) OnDay(day time.Time) TimeSlot {
	start := time.Date(
		day.Year(), day.Month(), day.Day(),
		ts.start.Hour(), ts.start.Minute(), ts.start.Second(), ts.start.Nanosecond(),
		ts.start.Location(),
	)
	return TimeSlot{start: start, end: start.Add(ts.Duration())}
}

// CreatorEmail is the canonical identity used for cancellation matching.
// It is always stored lower-cased and trimmed.
type CreatorEmail struct {
	value string
}

func NewCreatorEmail(raw string) (CreatorEmail, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if _, err := mail.ParseAddress(normalized); err != nil {
		return CreatorEmail{}, ErrInvalidEmail
	}
	return CreatorEmail{value: normalized}, nil
}

func (e CreatorEmail) String() string {
	return e.value
}

func (e CreatorEmail) Equals(other CreatorEmail) bool {
	return e.value == other.value
}

// BelongsToDomain reports whether the address is under the given domain.
// An empty domain means no restriction.
func (e CreatorEmail) BelongsToDomain(domain string) bool {
	if domain == "" {
		return true
	}
	return strings.HasSuffix(e.value, "@"+strings.ToLower(domain))
}

type CreatorName struct {
	value string
}

func NewCreatorName(raw string) (CreatorName, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < MinNameLength {
		return CreatorName{}, ErrNameTooShort
	}
	return CreatorName{value: trimmed}, nil
}

func (n CreatorName) String() string {
	return n.value
}

type Title struct {
	value string
}

func NewTitle(raw string) (Title, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < MinTitleLength || len(trimmed) > MaxTitleLength {
		return Title{}, ErrTitleLength
	}
	return Title{value: trimmed}, nil
}

func (t Title) String() string {
	return t.value
}

type Description struct {
	value string
}

func NewDescription(raw string) (Description, error) {
	if len(raw) > MaxDescriptionLength {
		return Description{}, ErrDescriptionTooLong
	}
	return Description{value: raw}, nil
}

func (d Description) String() string {
	return d.value
}

func (d Description) IsEmpty() bool {
	return d.value == ""
}
