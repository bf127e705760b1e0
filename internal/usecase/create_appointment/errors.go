package create_appointment

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь-инициатор не найден
	ErrUserNotFound = errors.New("create_appointment: user not found")

	// ErrListingNotFound возвращается, когда объект недвижимости не найден
	ErrListingNotFound = errors.New("create_appointment: listing not found")

	// ErrListingUnavailable возвращается, когда объект не принимает бронирования
	// (статус не active или объект помечен удалённым)
	ErrListingUnavailable = errors.New("create_appointment: listing is not available for appointments")

	// ErrPastDate возвращается, когда запрошенный слот не в будущем
	ErrPastDate = errors.New("create_appointment: cannot schedule appointments in the past")

	// ErrSlotConflict возвращается, когда слот уже занят активным бронированием
	ErrSlotConflict = errors.New("create_appointment: time slot is already booked for this listing")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
