package validate_time

import "errors"

// ErrInvalidInput возвращается при некорректных входных данных
var ErrInvalidInput = errors.New("invalid input data")
