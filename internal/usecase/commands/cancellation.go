package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/domain/cancellation"
	"roombook/internal/infra"
	"roombook/internal/infra/email"
	"roombook/internal/pkg/clock"
	"roombook/internal/pkg/config"
	"roombook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	// ErrEmailMismatch covers both "booking does not exist" and "email does
	// not match": the surfaced message must not reveal which.
	ErrEmailMismatch        = errs.New("email does not match the booking")
	ErrInvalidOrExpiredCode = errs.New("invalid or expired code")
	ErrRateLimited          = errs.New("too many attempts")
	ErrDeliveryFailed       = errs.New("failed to deliver the code")
)

const rateLimitKeyPrefix = "otp_request:"

// RateLimitedError carries the retry horizon for the user-facing message.
type RateLimitedError struct {
	ResetIn time.Duration
}

func (e *RateLimitedError) Error() string {
	return "too many attempts, retry later"
}

type CancellationCommands interface {
	// RequestCancellation issues a one-time code for the booking and emails
	// it to the claimed address. Rate limiting is enforced before any
	// booking lookup.
	RequestCancellation(ctx context.Context, bookingID uuid.UUID, claimedEmail string) error
	// ConfirmCancellation verifies the code and deletes the booking. The
	// token is consumed by the deletion itself.
	ConfirmCancellation(ctx context.Context, bookingID uuid.UUID, code string) error
}

type cancellationCommandsImpl struct {
	bookingRepo BookingRepository
	tokenRepo   TokenRepository
	emailSender EmailSender
	rateLimit   RateLimitStore
	clock       clock.Clock
	cfg         config.RateLimitConfig
	logger      *slog.Logger
}

func NewCancellationCommands(
	bookingRepo BookingRepository,
	tokenRepo TokenRepository,
	emailSender EmailSender,
	rateLimit RateLimitStore,
	clk clock.Clock,
	cfg config.RateLimitConfig,
	logger *slog.Logger,
) CancellationCommands {
	return &cancellationCommandsImpl{
		bookingRepo: bookingRepo,
		tokenRepo:   tokenRepo,
		emailSender: emailSender,
		rateLimit:   rateLimit,
		clock:       clk,
		cfg:         cfg,
		logger:      logger,
	}
}

func (c *cancellationCommandsImpl) RequestCancellation(ctx context.Context, bookingID uuid.UUID, claimedEmail string) error {
	normalized := strings.ToLower(strings.TrimSpace(claimedEmail))
	key := rateLimitKeyPrefix + normalized

	if status := c.rateLimit.Check(key); status.Limited {
		return errs.Mark(&RateLimitedError{ResetIn: status.ResetIn}, ErrRateLimited)
	}
	c.rateLimit.Record(key)

	snap, err := c.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrEmailMismatch
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if snap.Status != booking.StatusConfirmed.String() || snap.CreatorEmail != normalized {
		return ErrEmailMismatch
	}

	code, err := cancellation.GenerateCode()
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	token := cancellation.NewToken(bookingID, code, c.clock.Now())
	if err := c.tokenRepo.UpsertLive(ctx, bookingID, token.CodeHash(), token.ExpiresAt()); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	subject := "Booking cancellation code"
	html := email.CancellationCodeBody(code)
	if err := c.emailSender.Send(ctx, normalized, subject, html); err != nil {
		// The user needs to know the code may never arrive, unlike the
		// detached confirmation mail.
		c.logger.Warn("cancellation code email failed",
			"booking_id", bookingID.String(),
			"error", err,
		)
		return errs.Mark(err, ErrDeliveryFailed)
	}

	return nil
}

func (c *cancellationCommandsImpl) ConfirmCancellation(ctx context.Context, bookingID uuid.UUID, code string) error {
	now := c.clock.Now()

	snap, err := c.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrInvalidOrExpiredCode
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if snap.Status != booking.StatusConfirmed.String() {
		return ErrInvalidOrExpiredCode
	}

	tokenSnap, err := c.tokenRepo.FindLive(ctx, bookingID, now)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrInvalidOrExpiredCode
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	token := cancellation.ReconstructToken(tokenSnap.BookingID, tokenSnap.CodeHash, tokenSnap.ExpiresAt)
	if !token.Matches(code, now) {
		return ErrInvalidOrExpiredCode
	}

	// Deleting the booking consumes the token: the token row goes with it
	// and can never be replayed.
	if err := c.bookingRepo.Delete(ctx, bookingID); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	c.rateLimit.Clear(rateLimitKeyPrefix + snap.CreatorEmail)

	return nil
}
