package application

import "errors"

// Typed failures returned by the services. Handlers map these onto HTTP
// statuses; anything not listed here is an upstream failure and surfaces as
// a server error.
var (
	// ErrEmailTaken signals a duplicate registration.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password; callers must not be able to tell which check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidOrExpiredToken covers missing, expired and
	// already-consumed challenge tokens alike, so the endpoint is not an
	// oracle for account or token state.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")

	// ErrPasswordTooShort rejects passwords below the minimum length.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")

	// ErrInvalidInput rejects payloads that pass binding but fail a
	// semantic check, such as a whitespace-only message body.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyVerified rejects a verification resend for an account
	// whose email is already confirmed.
	ErrAlreadyVerified = errors.New("email already verified")

	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrProductUnavailable = errors.New("product not available")
	ErrReviewLimit        = errors.New("review limit reached for this product")
	ErrInvalidStatus      = errors.New("invalid status")
)

const minPasswordLen = 8
