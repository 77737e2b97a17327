package create_appointment

import (
	"errors"
	"fmt"
)

var (
	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = errors.New("create_appointment: branch not found")

	// ErrBranchClosed возвращается, когда филиал не работает в этот день (выходной, праздник, нет часов)
	ErrBranchClosed = errors.New("create_appointment: branch is closed on this date")

	// ErrOutsideHours возвращается, когда запись начинается до открытия
	ErrOutsideHours = errors.New("create_appointment: appointment is outside operating hours")

	// ErrTooLateToBook возвращается, когда начало раньше now + 2 часа
	ErrTooLateToBook = errors.New("create_appointment: too late to book this time")

	// ErrStylistBusy возвращается, когда у мастера есть пересекающаяся запись
	ErrStylistBusy = errors.New("create_appointment: stylist is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)

// RejectionError отказ с сообщением, которое показывается пользователю как есть
type RejectionError struct {
	Err     error
	Message string
}

func reject(err error, format string, v ...interface{}) *RejectionError {
	return &RejectionError{Err: err, Message: fmt.Sprintf(format, v...)}
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Message)
}

func (e *RejectionError) Unwrap() error {
	return e.Err
}
