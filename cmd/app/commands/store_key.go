package commands

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// RunGenerateStoreKey generates a cryptographically secure 32-byte key for
// the encrypted token store and writes it hex-encoded, ready to be used as
// the STORE_KEY environment variable.
func RunGenerateStoreKey(io IOTuple) error {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate store key: %w", err)
	}

	if _, err := fmt.Fprintf(io.Writer, "STORE_KEY=\"%s\"\n", hex.EncodeToString(key)); err != nil {
		return fmt.Errorf("failed to write store key: %w", err)
	}

	return nil
}
