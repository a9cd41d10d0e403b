package service

import "errors"

// 服务层业务错误，handler 通过 errors.Is 映射为 HTTP 响应
var (
	ErrInvalidEmail              = errors.New("invalid email format")
	ErrWeakPassword              = errors.New("password does not meet policy")
	ErrEmailExists               = errors.New("email already registered")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrEmailNotVerified          = errors.New("email not verified")
	ErrEmailAlreadyVerified      = errors.New("email already verified")
	ErrUserSuspended             = errors.New("account suspended")
	ErrNotFound                  = errors.New("record not found")
	ErrVerificationTokenInvalid  = errors.New("invalid or expired verification token")
	ErrAccessTokenInvalid        = errors.New("invalid or expired access token")
	ErrRefreshTokenInvalid       = errors.New("invalid or expired refresh token")
	ErrPhotoPositionTaken        = errors.New("photo position already in use")
	ErrNotMatchParticipant       = errors.New("not a participant of this match")
	ErrSelfSwipe                 = errors.New("cannot swipe on yourself")
	ErrInvalidSwipeDirection     = errors.New("invalid swipe direction")
	ErrEmptyMessage              = errors.New("message content is empty")
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)
