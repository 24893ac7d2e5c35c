package errors

type Error string

func (e Error) Error() string {
	return string(e)
}

func (e Error) Map() map[string]any {
	return map[string]any{"message": e.Error()}
}

const (
	ErrDb               Error = "database error"
	ErrUsersUnavailable Error = "users are unavailable"
	ErrMissingNonce     Error = "missing nonce"
	ErrInvalidNonce     Error = "invalid nonce"
	ErrUnknownAction    Error = "unknown action"
	ErrBadResponse      Error = "unexpected response"
)
