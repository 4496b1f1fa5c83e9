package courseservice

import "github.com/m04kA/tutor-booking-service/internal/domain"

// Course модель курса из каталога
type Course struct {
	ID      string `json:"id"`
	TutorID string `json:"tutorId"`
	Title   string `json:"title"`
}

// ToDomain конвертирует курс в доменную ссылку
func (c *Course) ToDomain() *domain.Course {
	return &domain.Course{
		ID:      c.ID,
		TutorID: c.TutorID,
		Title:   c.Title,
	}
}
