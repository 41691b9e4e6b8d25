package storage

import "errors"

var (
	ErrUserExists     = errors.New("user already exists")
	ErrUserNotFound   = errors.New("user not found")
	ErrTenantNotFound = errors.New("tenant not found")
)

var (
	ErrPropertyNotFound     = errors.New("property not found")
	ErrRoomNotFound         = errors.New("room not found")
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrGuestNotFound        = errors.New("guest not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrChannelNotFound      = errors.New("sales channel not found")
	ErrChannelCodeTaken     = errors.New("sales channel code already taken")
	ErrAvailabilityNotFound = errors.New("availability row not found")
)
