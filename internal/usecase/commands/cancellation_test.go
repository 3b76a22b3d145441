//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"roombook/internal/domain/cancellation"
	"roombook/internal/infra"
	"roombook/internal/infra/ratelimit"
	"roombook/internal/pkg/clock"
	"roombook/internal/pkg/config"
	"roombook/internal/usecase/commands"
	"roombook/tests/common/builder"
	portsmock "roombook/tests/mock/ports"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CancellationCommandsTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	bookingRepo *portsmock.MockBookingRepository
	tokenRepo   *portsmock.MockTokenRepository
	sender      *portsmock.MockEmailSender
	rateLimit   *ratelimit.MemoryStore
	clock       *clock.MockClock
	commands    commands.CancellationCommands

	bookingID uuid.UUID
	email     string
}

func (s *CancellationCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.bookingRepo = portsmock.NewMockBookingRepository(s.mockCtrl)
	s.tokenRepo = portsmock.NewMockTokenRepository(s.mockCtrl)
	s.sender = portsmock.NewMockEmailSender(s.mockCtrl)
	s.clock = clock.NewMockClock(builder.BaseTime)

	cfg := config.RateLimitConfig{MaxAttempts: 3, Window: 15 * time.Minute}
	s.rateLimit = ratelimit.NewMemoryStore(cfg, s.clock)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.commands = commands.NewCancellationCommands(s.bookingRepo, s.tokenRepo, s.sender, s.rateLimit, s.clock, cfg, logger)

	s.bookingID = uuid.New()
	s.email = "alice@example.com"
}

func (s *CancellationCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCancellationCommandsSuite(t *testing.T) {
	suite.Run(t, new(CancellationCommandsTestSuite))
}

func (s *CancellationCommandsTestSuite) confirmedBooking() *commands.BookingSnapshot {
	return &commands.BookingSnapshot{
		ID:           s.bookingID,
		RoomID:       uuid.New(),
		CreatorName:  "Alice Johnson",
		CreatorEmail: s.email,
		Title:        "Weekly sync",
		StartTime:    builder.BaseTime.Add(24 * time.Hour),
		EndTime:      builder.BaseTime.Add(25 * time.Hour),
		Status:       "confirmed",
	}
}

// expectIssue wires one successful code issuance and captures the stored
// hash so the test can replay or forge codes against it.
func (s *CancellationCommandsTestSuite) expectIssue(storedHash *string) {
	s.bookingRepo.EXPECT().
		FindByID(gomock.Any(), s.bookingID).
		Return(s.confirmedBooking(), nil)
	s.tokenRepo.EXPECT().
		UpsertLive(gomock.Any(), s.bookingID, gomock.Any(), s.clock.Now().Add(cancellation.TokenTTL)).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, codeHash string, _ time.Time) error {
			*storedHash = codeHash
			return nil
		})
	s.sender.EXPECT().
		Send(gomock.Any(), s.email, gomock.Any(), gomock.Any()).
		Return(nil)
}

func (s *CancellationCommandsTestSuite) TestRequestIssuesToken() {
	var storedHash string
	s.expectIssue(&storedHash)

	err := s.commands.RequestCancellation(context.Background(), s.bookingID, "  Alice@Example.com ")

	s.Require().NoError(err)
	s.NotEmpty(storedHash)
	s.Len(storedHash, 64) // hex sha-256, never the plain code
}

func (s *CancellationCommandsTestSuite) TestRequestMismatchIsOpaque() {
	// A wrong email on an existing booking and a booking that does not exist
	// must be indistinguishable to the caller.
	s.bookingRepo.EXPECT().
		FindByID(gomock.Any(), s.bookingID).
		Return(s.confirmedBooking(), nil)
	mismatchErr := s.commands.RequestCancellation(context.Background(), s.bookingID, "mallory@example.com")

	missingID := uuid.New()
	s.bookingRepo.EXPECT().
		FindByID(gomock.Any(), missingID).
		Return(nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound))
	missingErr := s.commands.RequestCancellation(context.Background(), missingID, "mallory@example.com")

	s.Require().ErrorIs(mismatchErr, commands.ErrEmailMismatch)
	s.Require().ErrorIs(missingErr, commands.ErrEmailMismatch)
	s.Equal(mismatchErr.Error(), missingErr.Error())
}

func (s *CancellationCommandsTestSuite) TestRequestRateLimited() {
	// Both lookups count as attempts even though neither matched.
	s.bookingRepo.EXPECT().
		FindByID(gomock.Any(), s.bookingID).
		Return(s.confirmedBooking(), nil).
		Times(3)
	for i := 0; i < 3; i++ {
		err := s.commands.RequestCancellation(context.Background(), s.bookingID, "mallory@example.com")
		s.Require().ErrorIs(err, commands.ErrEmailMismatch)
	}

	// Fourth attempt is rejected before any booking lookup; no FindByID
	// expectation is registered for it.
	err := s.commands.RequestCancellation(context.Background(), s.bookingID, "mallory@example.com")
	s.Require().ErrorIs(err, commands.ErrRateLimited)

	var limited *commands.RateLimitedError
	s.Require().ErrorAs(err, &limited)
	s.Greater(limited.ResetIn, time.Duration(0))
}

func (s *CancellationCommandsTestSuite) TestRequestSucceedsAfterWindowExpires() {
	s.bookingRepo.EXPECT().
		FindByID(gomock.Any(), s.bookingID).
		Return(s.confirmedBooking(), nil).
		Times(3)
	for i := 0; i < 3; i++ {
		_ = s.commands.RequestCancellation(context.Background(), s.bookingID, "mallory@example.com")
	}
	err := s.commands.RequestCancellation(context.Background(), s.bookingID, "mallory@example.com")
	s.Require().ErrorIs(err, commands.ErrRateLimited)

	s.clock.Add(15*time.Minute + time.Second)

	var storedHash string
	s.expectIssue(&storedHash)
	err = s.commands.RequestCancellation(context.Background(), s.bookingID, s.email)
	s.Require().NoError(err)
}

func (s *CancellationCommandsTestSuite) TestRequestDeliveryFailure() {
	s.bookingRepo.EXPECT().
		FindByID(gomock.Any(), s.bookingID).
		Return(s.confirmedBooking(), nil)
	s.tokenRepo.EXPECT().
		UpsertLive(gomock.Any(), s.bookingID, gomock.Any(), gomock.Any()).
		Return(nil)
	s.sender.EXPECT().
		Send(gomock.Any(), s.email, gomock.Any(), gomock.Any()).
		Return(errors.New("smtp: connection refused"))

	err := s.commands.RequestCancellation(context.Background(), s.bookingID, s.email)

	s.Require().ErrorIs(err, commands.ErrDeliveryFailed)
}

func (s *CancellationCommandsTestSuite) TestConfirmCancelsBooking() {
	code := "123456"
	now := s.clock.Now()

	s.bookingRepo.EXPECT().
		FindByID(gomock.Any(), s.bookingID).
		Return(s.confirmedBooking(), nil)
	s.tokenRepo.EXPECT().
		FindLive(gomock.Any(), s.bookingID, now).
		Return(&commands.TokenSnapshot{
			BookingID: s.bookingID,
			CodeHash:  cancellation.HashCode(code),
			ExpiresAt: now.Add(cancellation.TokenTTL),
		}, nil)
	s.bookingRepo.EXPECT().
		Delete(gomock.Any(), s.bookingID).
		Return(nil)

	// A prior failed attempt left attempts on the creator's key; a successful
	// confirmation clears them.
	s.rateLimit.Record("otp_request:" + s.email)

	err := s.commands.ConfirmCancellation(context.Background(), s.bookingID, code)

	s.Require().NoError(err)
	s.Equal(3, s.rateLimit.Check("otp_request:"+s.email).RemainingAttempts)
}

func (s *CancellationCommandsTestSuite) TestConfirmWrongCode() {
	now := s.clock.Now()

	s.bookingRepo.EXPECT().
		FindByID(gomock.Any(), s.bookingID).
		Return(s.confirmedBooking(), nil)
	s.tokenRepo.EXPECT().
		FindLive(gomock.Any(), s.bookingID, now).
		Return(&commands.TokenSnapshot{
			BookingID: s.bookingID,
			CodeHash:  cancellation.HashCode("123456"),
			ExpiresAt: now.Add(cancellation.TokenTTL),
		}, nil)

	err := s.commands.ConfirmCancellation(context.Background(), s.bookingID, "654321")

	s.Require().ErrorIs(err, commands.ErrInvalidOrExpiredCode)
}

func (s *CancellationCommandsTestSuite) TestConfirmExpiredCode() {
	code := "123456"
	issuedAt := s.clock.Now()
	s.clock.Add(cancellation.TokenTTL + time.Second)
	now := s.clock.Now()

	s.bookingRepo.EXPECT().
		FindByID(gomock.Any(), s.bookingID).
		Return(s.confirmedBooking(), nil)
	s.tokenRepo.EXPECT().
		FindLive(gomock.Any(), s.bookingID, now).
		Return(&commands.TokenSnapshot{
			BookingID: s.bookingID,
			CodeHash:  cancellation.HashCode(code),
			ExpiresAt: issuedAt.Add(cancellation.TokenTTL),
		}, nil)

	err := s.commands.ConfirmCancellation(context.Background(), s.bookingID, code)

	s.Require().ErrorIs(err, commands.ErrInvalidOrExpiredCode)
}

func (s *CancellationCommandsTestSuite) TestConfirmWithoutToken() {
	now := s.clock.Now()

	s.bookingRepo.EXPECT().
		FindByID(gomock.Any(), s.bookingID).
		Return(s.confirmedBooking(), nil)
	s.tokenRepo.EXPECT().
		FindLive(gomock.Any(), s.bookingID, now).
		Return(nil, infra.WrapRepoErr("token not found", nil, infra.KindNotFound))

	err := s.commands.ConfirmCancellation(context.Background(), s.bookingID, "123456")

	s.Require().ErrorIs(err, commands.ErrInvalidOrExpiredCode)
}

func (s *CancellationCommandsTestSuite) TestReissueInvalidatesPreviousCode() {
	var firstHash, secondHash string
	s.expectIssue(&firstHash)
	s.Require().NoError(s.commands.RequestCancellation(context.Background(), s.bookingID, s.email))

	s.expectIssue(&secondHash)
	s.Require().NoError(s.commands.RequestCancellation(context.Background(), s.bookingID, s.email))

	s.NotEqual(firstHash, secondHash)

	// Only the latest token survives the upsert; verifying against it with
	// any code that hashes to the first value must fail.
	now := s.clock.Now()
	s.bookingRepo.EXPECT().
		FindByID(gomock.Any(), s.bookingID).
		Return(s.confirmedBooking(), nil)
	s.tokenRepo.EXPECT().
		FindLive(gomock.Any(), s.bookingID, now).
		Return(&commands.TokenSnapshot{
			BookingID: s.bookingID,
			CodeHash:  secondHash,
			ExpiresAt: now.Add(cancellation.TokenTTL),
		}, nil)

	err := s.commands.ConfirmCancellation(context.Background(), s.bookingID, "000000")

	s.Require().ErrorIs(err, commands.ErrInvalidOrExpiredCode)
}

func (s *CancellationCommandsTestSuite) TestConfirmCancelledBooking() {
	snap := s.confirmedBooking()
	snap.Status = "cancelled"

	s.bookingRepo.EXPECT().
		FindByID(gomock.Any(), s.bookingID).
		Return(snap, nil)

	err := s.commands.ConfirmCancellation(context.Background(), s.bookingID, "123456")

	s.Require().ErrorIs(err, commands.ErrInvalidOrExpiredCode)
}
