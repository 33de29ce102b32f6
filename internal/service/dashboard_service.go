package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-portal/internal/models"
	"github.com/noah-isme/classroom-portal/internal/repository"
)

// DashboardService assembles the role-specific landing view.
type DashboardService struct {
	users       repository.Repository[models.User]
	lectures    repository.Repository[models.Lecture]
	assignments repository.Repository[models.Assignment]
	logger      *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(
	users repository.Repository[models.User],
	lectures repository.Repository[models.Lecture],
	assignments repository.Repository[models.Assignment],
	logger *zap.Logger,
) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{users: users, lectures: lectures, assignments: assignments, logger: logger}
}

// ForIdentity lists students for admins and course material for students.
func (s *DashboardService) ForIdentity(ctx context.Context, actor models.Identity) models.Dashboard {
	if actor.IsAdmin() {
		students := []models.UserView{}
		for _, u := range loadAll(ctx, s.users, s.logger) {
			if u.Role == models.RoleStudent {
				students = append(students, u.View())
			}
		}
		return models.Dashboard{Role: actor.Role, Students: students}
	}
	return models.Dashboard{
		Role:        actor.Role,
		Lectures:    loadAll(ctx, s.lectures, s.logger),
		Assignments: loadAll(ctx, s.assignments, s.logger),
	}
}
