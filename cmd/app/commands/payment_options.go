package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yoomoney/checkout/internal/app"
	"github.com/yoomoney/checkout/internal/config"
)

// RunPaymentOptions fetches the payment options for the configured charge
// from the payments API and writes them as JSON. Useful for checking the
// API credentials and the sandbox server from the command line.
func RunPaymentOptions(ctx context.Context, savePaymentMethod bool, io IOTuple) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	useCase, err := container.TokenizationUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize tokenization use case: %w", err)
	}

	options, err := useCase.FetchPaymentOptions(ctx, savePaymentMethod)
	if err != nil {
		return fmt.Errorf("failed to fetch payment options: %w", err)
	}

	encoder := json.NewEncoder(io.Writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(options); err != nil {
		return fmt.Errorf("failed to encode payment options: %w", err)
	}

	return nil
}
