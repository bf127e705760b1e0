package userservice

import "github.com/estatelink/viewing-service/internal/domain"

// User модель пользователя из UserService
type User struct {
	ID   int64  `json:"id"`
	Role string `json:"role"` // client / agent / admin
}

// ToDomain конвертирует модель интеграции в domain модель
func (u *User) ToDomain() *domain.Identity {
	return &domain.Identity{
		UserID: u.ID,
		Role:   domain.Role(u.Role),
	}
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
