package catalog

import "errors"

var (
	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = errors.New("catalog: store unavailable")
)
