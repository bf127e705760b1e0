package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда бронирование просмотра не найдено
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotTaken возвращается при нарушении уникальности активного слота
	// (listing_id, scheduled_date, scheduled_time) на уровне БД
	ErrSlotTaken = errors.New("appointment.repository: slot is already taken")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
