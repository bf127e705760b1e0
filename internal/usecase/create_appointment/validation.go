package create_appointment

import (
	"fmt"
	"time"

	"github.com/estatelink/viewing-service/internal/domain"
	"github.com/estatelink/viewing-service/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ListingID <= 0 {
		return fmt.Errorf("%w: listingID must be positive", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время слота указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateSlotInFuture проверяет, что дата и время слота строго в будущем.
// Слот, совпадающий с текущим моментом, считается прошедшим.
func validateSlotInFuture(date time.Time, slot types.TimeString, now time.Time) error {
	scheduledAt, err := slot.OnDate(date)
	if err != nil {
		return fmt.Errorf("%w: invalid slot time: %v", ErrInvalidInput, err)
	}

	if !scheduledAt.After(now) {
		return ErrPastDate
	}

	return nil
}
