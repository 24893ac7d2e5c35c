package service

import "time"

// NonceService issues and verifies anti-forgery tokens bound to a named action.
type NonceService interface {
	Issue(action string) (string, error)
	Verify(token, action string) error
	Lifetime() time.Duration
}
