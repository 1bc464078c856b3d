package usecase

import (
	"context"
	"strconv"

	"balkan-spine-wellness/internal/domain"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	sessions   domain.ContactSessions
	redisCheck func(ctx context.Context) error
}

// NewHealthUsecase reports process health. redisCheck may be nil when the
// rate limiter runs in memory.
func NewHealthUsecase(sessions domain.ContactSessions, redisCheck func(ctx context.Context) error) HealthUsecase {
	return &healthUsecase{
		sessions:   sessions,
		redisCheck: redisCheck,
	}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	result := map[string]string{
		"status":   "ok",
		"sessions": strconv.Itoa(u.sessions.Len()),
		"redis":    "disabled",
	}
	if u.redisCheck != nil {
		if err := u.redisCheck(ctx); err != nil {
			// rate limiting falls back to memory, so the site stays up
			result["redis"] = "unavailable"
		} else {
			result["redis"] = "ok"
		}
	}
	return result
}
