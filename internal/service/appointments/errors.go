package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда бронирование просмотра не найдено
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition возвращается при попытке изменить бронирование
	// в терминальном статусе или перевести его в недопустимый статус
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
