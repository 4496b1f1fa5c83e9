// Package usecasetest содержит фейковые внешние сервисы для тестов use case и роутера.
package usecasetest

import (
	"context"
	"sync"

	"github.com/m04kA/tutor-booking-service/internal/domain"
	"github.com/m04kA/tutor-booking-service/internal/integrations/courseservice"
	"github.com/m04kA/tutor-booking-service/internal/integrations/userservice"
)

// Courses фейковый каталог курсов
type Courses struct {
	mu      sync.Mutex
	courses map[string]*courseservice.Course
	Err     error
}

// NewCourses создает каталог с заданными курсами
func NewCourses(courses ...*courseservice.Course) *Courses {
	c := &Courses{courses: make(map[string]*courseservice.Course)}
	for _, course := range courses {
		c.courses[course.ID] = course
	}
	return c
}

// GetCourse .
func (c *Courses) GetCourse(_ context.Context, courseID string) (*courseservice.Course, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return nil, c.Err
	}
	course, ok := c.courses[courseID]
	if !ok {
		return nil, courseservice.ErrCourseNotFound
	}
	cp := *course
	return &cp, nil
}

// Users фейковый сервис пользователей
type Users struct {
	mu    sync.Mutex
	users map[string]*userservice.User
	Err   error
}

// NewUsers создает сервис с заданными пользователями
func NewUsers(users ...*userservice.User) *Users {
	u := &Users{users: make(map[string]*userservice.User)}
	for _, user := range users {
		u.users[user.ID] = user
	}
	return u
}

// GetUserWithGracefulDegradation .
func (u *Users) GetUserWithGracefulDegradation(_ context.Context, userID string) (*userservice.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.Err != nil {
		return nil, u.Err
	}
	user, ok := u.users[userID]
	if !ok {
		return nil, userservice.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

// Notifications запоминает отправленные уведомления
type Notifications struct {
	mu   sync.Mutex
	sent []domain.Notification
}

// Notify .
func (n *Notifications) Notify(_ context.Context, notification domain.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
}

// Sent копия отправленных уведомлений
func (n *Notifications) Sent() []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.Notification(nil), n.sent...)
}

// Last последнее уведомление или пустое значение
func (n *Notifications) Last() domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.sent) == 0 {
		return domain.Notification{}
	}
	return n.sent[len(n.sent)-1]
}

// Counter считает бизнес-операции по результату
type Counter struct {
	mu     sync.Mutex
	counts map[string]int
}

// IncBookingOperation .
func (c *Counter) IncBookingOperation(operation, result string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	c.counts[operation+"/"+result]++
}

// Get число операций operation с результатом result
func (c *Counter) Get(operation, result string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[operation+"/"+result]
}
