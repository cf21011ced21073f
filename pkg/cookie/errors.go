package cookie

import "errors"

var (
	ErrCookieNotFound = errors.New("cookie.not_found")
	ErrEmptyName      = errors.New("cookie.empty_name")
	ErrInvalidCookie  = errors.New("cookie.invalid")
)

var ErrNoResponseWriter = errors.New("cookie.no_response_writer")
