package notification

import "errors"

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrForbidden            = errors.New("notification belongs to another user")
)
