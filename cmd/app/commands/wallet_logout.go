package commands

import (
	"fmt"

	"github.com/yoomoney/checkout/internal/app"
	"github.com/yoomoney/checkout/internal/config"
)

// RunWalletLogout forgets the stored wallet authorization. The wallet token,
// its reusability flag and the wallet display name are removed from the
// token store.
func RunWalletLogout(io IOTuple) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	authorization, err := container.AuthorizationService()
	if err != nil {
		return fmt.Errorf("failed to initialize authorization service: %w", err)
	}

	authorization.Logout()

	if _, err := fmt.Fprintln(io.Writer, "wallet authorization removed"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}
