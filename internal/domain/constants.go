package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxNotesLength = 500
)

// ActiveStatuses список статусов, при которых бронирование занимает слот.
// Используется в проверке конфликтов: отменённые и завершённые
// бронирования слот не занимают.
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}

// TerminalStatuses список терминальных статусов - дальнейшие переходы запрещены
var TerminalStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusCompleted,
}
