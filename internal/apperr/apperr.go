package apperr

import "errors"

// Пять видов ошибок, которые должен различать вызывающий код.
// Репозитории и сервисы оборачивают их через fmt.Errorf("...: %w", ...),
// обработчики сопоставляют через errors.Is.
var (
	ErrNotFound     = errors.New("не найдено")
	ErrConflict     = errors.New("конфликт")
	ErrForbidden    = errors.New("доступ запрещен")
	ErrUnverifiable = errors.New("подлинность не подтверждена")
	ErrUpstream     = errors.New("ошибка внешней системы")
)
