package update_appointment_status

import "github.com/estatelink/viewing-service/internal/service/appointments/models"

// UpdateStatusRequest HTTP request model.
// Целевой статус: confirmed, cancelled или completed.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(requesterID int64) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		RequesterID: requesterID,
		Status:      r.Status,
	}
}
