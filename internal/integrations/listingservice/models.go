package listingservice

import "github.com/estatelink/viewing-service/internal/domain"

// Listing модель объекта недвижимости из ListingService
type Listing struct {
	ID        int64  `json:"id"`
	AgentID   int64  `json:"agent_id"`
	Status    string `json:"status"` // active / pending / sold / inactive
	IsDeleted bool   `json:"is_deleted"`
}

// ToDomain конвертирует модель интеграции в domain модель
func (l *Listing) ToDomain() *domain.Listing {
	return &domain.Listing{
		ID:        l.ID,
		AgentID:   l.AgentID,
		Status:    domain.ListingStatus(l.Status),
		IsDeleted: l.IsDeleted,
	}
}

// ErrorResponse модель ошибки от ListingService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
