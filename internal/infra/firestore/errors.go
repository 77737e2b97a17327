package firestore

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrConnect ошибка инициализации клиента
	ErrConnect = errors.New("firestore: failed to connect")

	// ErrRead ошибка чтения документов
	ErrRead = errors.New("firestore: failed to read documents")

	// ErrWrite ошибка записи документа
	ErrWrite = errors.New("firestore: failed to write document")

	// ErrDecode документ не удалось разобрать
	ErrDecode = errors.New("firestore: failed to decode document")
)

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
