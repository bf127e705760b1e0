package reschedule_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда бронирование не найдено
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrAccessDenied возвращается, когда инициатор не является участником бронирования
	ErrAccessDenied = errors.New("reschedule_appointment: access denied")

	// ErrInvalidTransition возвращается при попытке перенести бронирование
	// в терминальном статусе (cancelled/completed)
	ErrInvalidTransition = errors.New("reschedule_appointment: appointment is in a terminal state")

	// ErrPastDate возвращается, когда новый слот не в будущем
	ErrPastDate = errors.New("reschedule_appointment: cannot reschedule appointments into the past")

	// ErrSlotConflict возвращается, когда новый слот занят другим активным бронированием
	ErrSlotConflict = errors.New("reschedule_appointment: time slot is already booked for this listing")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
