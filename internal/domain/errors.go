package domain

import "errors"

// Общие ошибки хранилищ. Обе реализации (postgres и firestore) возвращают именно их.
var (
	ErrBranchNotFound      = errors.New("branch not found")
	ErrScheduleNotFound    = errors.New("active schedule configuration not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
)
