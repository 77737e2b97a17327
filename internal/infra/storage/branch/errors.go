package branch

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("branch.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("branch.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("branch.repository: failed to scan row")

	// ErrDecodeJSON возвращается, когда JSONB-колонку не удалось разобрать
	ErrDecodeJSON = errors.New("branch.repository: failed to decode json column")
)
