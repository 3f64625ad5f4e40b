package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/vitaworks/vitae-backend/internal/repository"
)

// Settings whose keys carry this prefix are safe to serve without auth.
// The prefix is stripped in the public view.
const publicSettingPrefix = "public_"

type SettingService struct {
	settingRepo *repository.SettingRepository
	log         zerolog.Logger
}

func NewSettingService(settingRepo *repository.SettingRepository, log zerolog.Logger) *SettingService {
	return &SettingService{
		settingRepo: settingRepo,
		log:         log.With().Str("component", "setting_service").Logger(),
	}
}

func (s *SettingService) GetAllSettings(ctx context.Context) (map[string]string, error) {
	settingsList, err := s.settingRepo.GetAll(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to get all settings")
		return nil, err
	}

	settingsMap := make(map[string]string)
	for _, setting := range settingsList {
		settingsMap[setting.Key] = setting.Value
	}
	return settingsMap, nil
}

// GetPublicSettings returns only the settings marked public. Everything else
// in the table stays admin-only.
func (s *SettingService) GetPublicSettings(ctx context.Context) (map[string]string, error) {
	settings, err := s.GetAllSettings(ctx)
	if err != nil {
		return nil, err
	}
	return publicView(settings), nil
}

func publicView(settings map[string]string) map[string]string {
	view := make(map[string]string)
	for key, value := range settings {
		if strings.HasPrefix(key, publicSettingPrefix) {
			view[strings.TrimPrefix(key, publicSettingPrefix)] = value
		}
	}
	return view
}

func (s *SettingService) UpdateSettings(ctx context.Context, settingsMap map[string]string) error {
	// Simple iterative upsert since settings are low volume.
	for key, value := range settingsMap {
		if err := s.settingRepo.Upsert(ctx, key, value); err != nil {
			s.log.Error().Err(err).Str("key", key).Msg("failed to update setting")
			return err
		}
	}
	return nil
}

func (s *SettingService) GetSettingByKey(ctx context.Context, key string) (string, error) {
	setting, err := s.settingRepo.GetByKey(ctx, key)
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}
