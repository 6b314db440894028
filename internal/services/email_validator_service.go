package services

import (
	"context"
)

type EmailValidator interface {
	Validate(ctx context.Context, email string) error
}

type LocalValidator struct{}

func NewLocalValidator() *LocalValidator {
	return &LocalValidator{}
}

func (v *LocalValidator) Validate(
	ctx context.Context,
	email string,
) error {
	// Format already checked by the caller, so just accept
	return nil
}
