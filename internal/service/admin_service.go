package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/vitaworks/vitae-backend/internal/model"
	"github.com/vitaworks/vitae-backend/internal/repository"
)

// AdminService handles admin account operations.
type AdminService struct {
	adminRepo *repository.AdminRepository
	log       zerolog.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(adminRepo *repository.AdminRepository, log zerolog.Logger) *AdminService {
	return &AdminService{
		adminRepo: adminRepo,
		log:       log.With().Str("component", "admin_service").Logger(),
	}
}

// GetByID retrieves an admin by ID.
func (s *AdminService) GetByID(ctx context.Context, id int) (*model.Admin, error) {
	return s.adminRepo.GetByID(ctx, id)
}

// GetByEmail retrieves an admin by email.
func (s *AdminService) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	return s.adminRepo.GetByEmail(ctx, email)
}

// Create inserts a new admin account.
func (s *AdminService) Create(ctx context.Context, admin *model.Admin) error {
	return s.adminRepo.Create(ctx, admin)
}
