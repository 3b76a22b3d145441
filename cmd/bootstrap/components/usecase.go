package components

import (
	"log/slog"

	"roombook/internal/pkg/clock"
	"roombook/internal/pkg/config"
	"roombook/internal/usecase/commands"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		NewBookingCommands,
		NewCancellationCommands,
	),
)

func NewBookingCommands(
	bookingRepo commands.BookingRepository,
	roomRepo commands.RoomRepository,
	emailSender commands.EmailSender,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) commands.BookingCommands {
	return commands.NewBookingCommands(bookingRepo, roomRepo, emailSender, clk, cfg.Booking, logger)
}

func NewCancellationCommands(
	bookingRepo commands.BookingRepository,
	tokenRepo commands.TokenRepository,
	emailSender commands.EmailSender,
	rateLimit commands.RateLimitStore,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) commands.CancellationCommands {
	return commands.NewCancellationCommands(bookingRepo, tokenRepo, emailSender, rateLimit, clk, cfg.RateLimit, logger)
}
