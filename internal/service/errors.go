package service

import (
	"errors"
	"fmt"

	"github.com/contentsuite/brandsuite/internal/ai"
	appErr "github.com/contentsuite/brandsuite/internal/pkg/errors"
)

// providerError tags a missing provider so handlers can tell it apart from a failed call.
func providerError(err error) error {
	if errors.Is(err, ai.ErrUnavailable) {
		return fmt.Errorf("%w: %w", appErr.ErrAIUnavailable, err)
	}
	return err
}
