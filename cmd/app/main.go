// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/yoomoney/checkout/cmd/app/commands"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "checkout",
		Usage:   "Payment tokenization sandbox and client tooling",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the sandbox HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "payment-options",
				Usage: "Fetch payment options for the configured charge",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "save-payment-method",
						Value: false,
						Usage: "Request options that allow saving the payment method",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunPaymentOptions(ctx, cmd.Bool("save-payment-method"), commands.DefaultIO())
				},
			},
			{
				Name:  "wallet-logout",
				Usage: "Forget the stored wallet authorization",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunWalletLogout(commands.DefaultIO())
				},
			},
			{
				Name:  "generate-store-key",
				Usage: "Generate a key for the encrypted token store",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunGenerateStoreKey(commands.DefaultIO())
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}
