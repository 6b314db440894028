package services

import "errors"

// Error taxonomy shared by the handlers. Services wrap these sentinels so
// endpoints can map them to HTTP statuses with errors.Is.
var (
	// ErrInvalidInput: malformed request, rejected before any side effect.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAuthenticationFailed: no live challenge matched. Covers both a wrong
	// and an expired code; the store cannot tell them apart in one query.
	ErrAuthenticationFailed = errors.New("invalid or expired PIN")

	// ErrStoreWrite / ErrStoreRead: the backing store rejected the operation.
	ErrStoreWrite = errors.New("store write failed")
	ErrStoreRead  = errors.New("store read failed")

	// ErrEmailDelivery: the provider call failed after the code was already
	// persisted. The challenge stays committed but unreachable until re-issue.
	ErrEmailDelivery = errors.New("email delivery failed")

	// ErrIdentityProvider: user lookup, creation or link generation failed.
	ErrIdentityProvider = errors.New("identity provider error")
)
