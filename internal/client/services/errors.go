package services

import "errors"

var (
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrNoAcademy       = errors.New("no academy is owned by the current user")
	ErrOrderNotFound   = errors.New("order not found")
	ErrOrderNotPayable = errors.New("order is not ready to pay")
)
