package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/terraincognita07/stackcheck/internal/api"
	"github.com/terraincognita07/stackcheck/internal/config"
	"github.com/terraincognita07/stackcheck/internal/security"
)

// RunTokenCommand prints a bearer token for one profile, signed with the
// configured SECRET_KEY.
func RunTokenCommand(rawSecretKey string, profileID uint, ttl time.Duration, now time.Time, out io.Writer) error {
	secretKey, err := config.ResolveSecretKey(rawSecretKey)
	if err != nil {
		return err
	}

	token, err := api.IssueProfileToken([]byte(secretKey), profileID, ttl, now)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	fmt.Fprintln(out, token)
	return nil
}

func RunKeygenCommand(length int, out io.Writer) error {
	key, err := security.GenerateSecretKey(length)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, key)
	return nil
}
