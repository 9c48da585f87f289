package usecase

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var inputValidator = validator.New()

func validateInput(ctx context.Context, input any) error {
	if err := inputValidator.StructCtx(ctx, input); err != nil {
		return fmt.Errorf("%w: validation failed: %v", ErrInvalidInput, err)
	}
	return nil
}
