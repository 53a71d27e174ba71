package services

import (
	"errors"
	"fmt"
	"time"

	"subsmanager-miniapp/internal/config"
	"subsmanager-miniapp/internal/models"

	initdata "github.com/telegram-mini-apps/init-data-golang"
)

var (
	ErrInitDataEmpty     = errors.New("init data is empty")
	ErrInitDataMalformed = errors.New("init data is malformed")
	ErrInitDataNoHash    = errors.New("init data has no hash")
	ErrInitDataSignature = errors.New("init data signature mismatch")
	ErrInitDataExpired   = errors.New("init data is expired")
	ErrInitDataNoUser    = errors.New("init data has no user")
)

// InitDataService checks the launch parameters the host platform signs with
// the bot token.
type InitDataService struct {
	botToken string
	maxAge   time.Duration
	now      func() time.Time
}

func NewInitDataService(cfg *config.TelegramConfig) InitDataServiceInterface {
	return &InitDataService{
		botToken: cfg.BotToken,
		maxAge:   cfg.InitDataMaxAge,
		now:      time.Now,
	}
}

// Validate returns the user the init data vouches for. A zero max age skips
// the freshness check.
func (s *InitDataService) Validate(raw string) (*models.HostUser, error) {
	if raw == "" {
		return nil, ErrInitDataEmpty
	}

	// freshness is checked below against the service clock
	if err := initdata.Validate(raw, s.botToken, 0); err != nil {
		return nil, mapInitDataError(err)
	}

	data, err := initdata.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInitDataMalformed, err)
	}

	if s.maxAge > 0 {
		if data.AuthDateRaw <= 0 {
			return nil, fmt.Errorf("%w: auth_date", ErrInitDataMalformed)
		}
		if s.now().Sub(time.Unix(int64(data.AuthDateRaw), 0)) > s.maxAge {
			return nil, ErrInitDataExpired
		}
	}

	if data.User.ID <= 0 {
		return nil, ErrInitDataNoUser
	}

	return &models.HostUser{
		ID:        data.User.ID,
		FirstName: data.User.FirstName,
		Source:    models.IdentitySourceHost,
	}, nil
}

func mapInitDataError(err error) error {
	switch {
	case errors.Is(err, initdata.ErrSignMissing):
		return ErrInitDataNoHash
	case errors.Is(err, initdata.ErrSignInvalid):
		return ErrInitDataSignature
	case errors.Is(err, initdata.ErrExpired):
		return ErrInitDataExpired
	default:
		return fmt.Errorf("%w: %v", ErrInitDataMalformed, err)
	}
}
