package constants

import "errors"

// Configuration errors.
var (
	ErrNoAccessToken     = errors.New("no access token configured, use 'pw login' or set PW_ACCESS_TOKEN")
	ErrNoEmail           = errors.New("no user email configured, use 'pw config set email <address>'")
	ErrUnknownConfigKey  = errors.New("unknown configuration key")
	ErrUnsupportedFormat = errors.New("unsupported output format")
)

// Argument errors.
var (
	ErrInvalidFilterFormat = errors.New("invalid filter format, expected key=value")
	ErrInvalidFieldFormat  = errors.New("invalid field format, expected key=value")
	ErrEmptyToken          = errors.New("access token must not be empty")
)
