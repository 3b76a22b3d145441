package bootstrap

import (
	"log/slog"

	"roombook/internal/infra/email"
	"roombook/internal/pkg/config"
	"roombook/internal/usecase/commands"

	"go.uber.org/fx"
)

var EmailModule = fx.Module("email",
	fx.Provide(
		fx.Annotate(
			func(cfg config.Config, logger *slog.Logger) email.Sender {
				return email.NewSender(cfg.SMTP, logger)
			},
			fx.As(new(commands.EmailSender)),
		),
	),
)
