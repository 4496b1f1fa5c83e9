package domain

import "strings"

// Role роль пользователя маркетплейса
type Role string

const (
	RoleTourist Role = "TOURIST"
	RoleTutor   Role = "TUTOR"
)

// ParseRole разбирает роль из заголовка, регистр не важен
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleTourist:
		return RoleTourist, true
	case RoleTutor:
		return RoleTutor, true
	default:
		return "", false
	}
}

// Caller аутентифицированный пользователь, выполняющий запрос
type Caller struct {
	ID   string
	Role Role
}

// IsTourist .
func (c Caller) IsTourist() bool { return c.Role == RoleTourist }

// IsTutor .
func (c Caller) IsTutor() bool { return c.Role == RoleTutor }

// Course ссылка на курс из каталога
type Course struct {
	ID      string
	TutorID string
	Title   string
}

// TouristProfile данные туриста из сервиса пользователей
type TouristProfile struct {
	ID    string
	Name  string
	Email string
	Phone *string
}
