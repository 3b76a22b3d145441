package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/infra"
	"roombook/internal/infra/email"
	"roombook/internal/pkg/clock"
	"roombook/internal/pkg/config"
	"roombook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrValidation              = errs.New("validation failed")
	ErrInvalidRange            = errs.New("invalid time range")
	ErrPastDate                = errs.New("start time is in the past")
	ErrDurationExceeded        = errs.New("duration exceeds the maximum")
	ErrInvalidRecurrence       = errs.New("invalid recurrence rule")
	ErrTooManyOccurrences      = errs.New("recurrence expands to too many occurrences")
	ErrConflict                = errs.New("booking conflict")
	ErrRoomNotFound            = errs.New("room not found")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// ConflictError names the interval that lost the availability check so the
// caller can tell the user which date to move.
type ConflictError struct {
	Date       time.Time
	Occurrence bool
}

func (e *ConflictError) Error() string {
	if e.Occurrence {
		return fmt.Sprintf("occurrence on %s conflicts with an existing booking", e.Date.Format("2006-01-02"))
	}
	return "requested time slot conflicts with an existing booking"
}

type CreateBookingInput struct {
	RoomID            uuid.UUID
	CreatorName       string
	CreatorEmail      string
	Title             string
	Description       string
	StartTime         time.Time
	EndTime           time.Time
	IsRecurring       bool
	RecurrenceKind    string
	RecurrenceEndDate *time.Time
	DaysOfWeek        []int
}

type CreateBookingResult struct {
	BookingID   uuid.UUID
	Occurrences int
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*CreateBookingResult, error)
	CheckAvailability(ctx context.Context, roomID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error)
}

type bookingCommandsImpl struct {
	bookingRepo BookingRepository
	roomRepo    RoomRepository
	emailSender EmailSender
	clock       clock.Clock
	cfg         config.BookingConfig
	logger      *slog.Logger
}

func NewBookingCommands(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	emailSender EmailSender,
	clk clock.Clock,
	cfg config.BookingConfig,
	logger *slog.Logger,
) BookingCommands {
	return &bookingCommandsImpl{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		emailSender: emailSender,
		clock:       clk,
		cfg:         cfg,
		logger:      logger,
	}
}

// CreateBooking validates the request, checks availability for the anchor
// and every expanded occurrence, and persists the whole set atomically.
// Validation failures come back as marked sentinel errors; nothing past the
// handler boundary is thrown to the user.
func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, input CreateBookingInput) (*CreateBookingResult, error) {
	anchor, rule, err := c.buildAnchor(input)
	if err != nil {
		return nil, err
	}

	roomSnap, err := c.roomRepo.FindByID(ctx, input.RoomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	slots, err := c.resolveSlots(ctx, anchor, rule)
	if err != nil {
		return nil, err
	}

	bookings := make([]*booking.Booking, 0, len(slots)+1)
	bookings = append(bookings, anchor)
	for _, slot := range slots {
		bookings = append(bookings, anchor.NewOccurrence(slot))
	}

	if err := c.bookingRepo.CreateMany(ctx, bookings); err != nil {
		// Losing the race after a clean pre-check lands here: the exclusion
		// constraint rejects the commit and the user sees the same conflict
		// message as the fast path.
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.Mark(&ConflictError{Date: anchor.TimeSlot().Start()}, ErrConflict)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	c.sendConfirmationDetached(anchor, roomSnap.Name)

	return &CreateBookingResult{
		BookingID:   anchor.ID(),
		Occurrences: len(slots),
	}, nil
}

// CheckAvailability is the advisory fast path the UI polls before
// submitting; the storage constraint remains the authority at commit time.
func (c *bookingCommandsImpl) CheckAvailability(ctx context.Context, roomID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	conflicts, err := c.bookingRepo.FindConflicting(ctx, roomID, start, end, excludeID)
	if err != nil {
		return false, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return len(conflicts) == 0, nil
}

func (c *bookingCommandsImpl) buildAnchor(input CreateBookingInput) (*booking.Booking, *booking.RecurrenceRule, error) {
	name, err := booking.NewCreatorName(input.CreatorName)
	if err != nil {
		return nil, nil, errs.Mark(err, ErrValidation)
	}

	creatorEmail, err := booking.NewCreatorEmail(input.CreatorEmail)
	if err != nil {
		return nil, nil, errs.Mark(err, ErrValidation)
	}
	if !creatorEmail.BelongsToDomain(c.cfg.AllowedEmailDomain) {
		return nil, nil, errs.Mark(booking.ErrEmailDomainBlocked, ErrValidation)
	}

	title, err := booking.NewTitle(input.Title)
	if err != nil {
		return nil, nil, errs.Mark(err, ErrValidation)
	}

	description, err := booking.NewDescription(input.Description)
	if err != nil {
		return nil, nil, errs.Mark(err, ErrValidation)
	}

	kind := booking.RecurrenceNone
	if input.IsRecurring {
		kind = booking.RecurrenceKind(input.RecurrenceKind)
	}

	// Time slot rules (range, past date, duration) are checked before the
	// recurrence rule: a request violating both reports the slot problem.
	services := &booking.Services{Clock: c.clock, MaxDuration: c.cfg.MaxDuration}
	anchor, err := booking.NewBooking(services, input.RoomID, name, creatorEmail, title, description, input.StartTime, input.EndTime, kind)
	if err != nil {
		return nil, nil, markDomainErr(err)
	}

	var rule *booking.RecurrenceRule
	if input.IsRecurring {
		days := make([]time.Weekday, 0, len(input.DaysOfWeek))
		for _, d := range input.DaysOfWeek {
			if d < 0 || d > 6 {
				return nil, nil, errs.Mark(booking.ErrInvalidRecurrence, ErrInvalidRecurrence)
			}
			days = append(days, time.Weekday(d))
		}
		r, ruleErr := booking.NewRecurrenceRule(kind, input.RecurrenceEndDate, days)
		if ruleErr != nil {
			return nil, nil, errs.Mark(ruleErr, ErrInvalidRecurrence)
		}
		rule = &r
	}

	return anchor, rule, nil
}

// resolveSlots checks the anchor interval and, for a recurring request,
// expands the rule and checks every occurrence in chronological order. The
// first conflict aborts the whole request before anything is written.
func (c *bookingCommandsImpl) resolveSlots(ctx context.Context, anchor *booking.Booking, rule *booking.RecurrenceRule) ([]booking.TimeSlot, error) {
	anchorSlot := anchor.TimeSlot()

	available, err := c.CheckAvailability(ctx, anchor.RoomID(), anchorSlot.Start(), anchorSlot.End(), nil)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, errs.Mark(&ConflictError{Date: anchorSlot.Start()}, ErrConflict)
	}

	if rule == nil {
		return nil, nil
	}

	dates := booking.Expand(anchorSlot.Start(), rule.Kind(), booking.ExpandOptions{
		EndDate:     rule.EndDate(),
		MonthsAhead: c.cfg.DefaultHorizonMonths,
		DaysOfWeek:  rule.DaysOfWeek(),
	})
	if len(dates) > c.cfg.MaxOccurrences {
		return nil, errs.Mark(
			errs.Newf("recurrence expands to %d occurrences (max %d)", len(dates), c.cfg.MaxOccurrences),
			ErrTooManyOccurrences,
		)
	}

	slots := make([]booking.TimeSlot, 0, len(dates))
	for _, date := range dates {
		slot := anchorSlot.OnDay(date)
		ok, checkErr := c.CheckAvailability(ctx, anchor.RoomID(), slot.Start(), slot.End(), nil)
		if checkErr != nil {
			return nil, checkErr
		}
		if !ok {
			return nil, errs.Mark(&ConflictError{Date: slot.Start(), Occurrence: true}, ErrConflict)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

// sendConfirmationDetached fires the confirmation email without blocking the
// request; a delivery failure is logged and never rolls back the booking.
func (c *bookingCommandsImpl) sendConfirmationDetached(anchor *booking.Booking, roomName string) {
	to := anchor.CreatorEmail().String()
	subject := fmt.Sprintf("Booking confirmation: %s", anchor.Title().String())
	html := email.BookingConfirmationBody(email.BookingConfirmationData{
		Title:       anchor.Title().String(),
		RoomName:    roomName,
		CreatorName: anchor.CreatorName().String(),
		BookingID:   anchor.ID().String(),
		StartTime:   anchor.TimeSlot().Start(),
		EndTime:     anchor.TimeSlot().End(),
	})

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := c.emailSender.Send(ctx, to, subject, html); err != nil {
			c.logger.Warn("confirmation email failed",
				"booking_id", anchor.ID().String(),
				"error", err,
			)
		}
	}()
}

func markDomainErr(err error) error {
	switch {
	case errors.Is(err, booking.ErrInvalidRange):
		return errs.Mark(err, ErrInvalidRange)
	case errors.Is(err, booking.ErrPastDate):
		return errs.Mark(err, ErrPastDate)
	case errors.Is(err, booking.ErrDurationExceeded):
		return errs.Mark(err, ErrDurationExceeded)
	default:
		return errs.Mark(err, ErrValidation)
	}
}
