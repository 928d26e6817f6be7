package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/terraincognita07/stackcheck/internal/services"
)

type ProfileRecomputer interface {
	RecomputeProfile(ctx context.Context, profileID uint) (services.RecomputeSummary, error)
}

// RunRecomputeCommand recomputes and stores every insight for one profile,
// then prints the summary as JSON.
func RunRecomputeCommand(ctx context.Context, recomputer ProfileRecomputer, profileID uint, out io.Writer) error {
	if profileID == 0 {
		return errors.New("profile id is required")
	}

	summary, err := recomputer.RecomputeProfile(ctx, profileID)
	if err != nil {
		return fmt.Errorf("recompute profile %d: %w", profileID, err)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(summary); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
