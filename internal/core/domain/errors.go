package domain

import "errors"

// ErrDecode is returned when input bytes are not valid UTF-8 text.
var ErrDecode = errors.New("input is not valid UTF-8")
