package userservice

import "github.com/m04kA/tutor-booking-service/internal/domain"

// User модель пользователя из UserService
type User struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
	Role  string  `json:"role"`
}

// ToProfile конвертирует пользователя в профиль туриста
func (u *User) ToProfile() *domain.TouristProfile {
	return &domain.TouristProfile{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
	}
}
