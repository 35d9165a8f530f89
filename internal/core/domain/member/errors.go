package member

import "errors"

var (
	ErrInvalidInput        = errors.New("name and email are required")
	ErrMemberDoesNotExist  = errors.New("member does not exist")
	ErrTokenExpired        = errors.New("verification token expired")
	ErrTokenMismatch       = errors.New("verification token mismatch")
	ErrMemberNotVerified   = errors.New("member is not verified")
	ErrTokenDeliveryFailed = errors.New("could not deliver verification token")
)
