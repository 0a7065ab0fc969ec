package usecase

import (
	"context"
	"time"
)

// Pinger reports whether a dependency is reachable.
type Pinger func(ctx context.Context) error

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	notionConfigured bool
	checks           map[string]Pinger
}

// NewHealthUsecase builds a health check over optional dependencies. A nil
// Pinger reports the dependency as disabled.
func NewHealthUsecase(notionConfigured bool, checks map[string]Pinger) HealthUsecase {
	return &healthUsecase{notionConfigured: notionConfigured, checks: checks}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	out := map[string]string{
		"status": "ok",
		"notion": "configured",
	}
	if !u.notionConfigured {
		out["notion"] = "missing credentials"
		out["status"] = "degraded"
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	for name, ping := range u.checks {
		switch {
		case ping == nil:
			out[name] = "disabled"
		case ping(ctx) != nil:
			out[name] = "unreachable"
			out["status"] = "degraded"
		default:
			out[name] = "ok"
		}
	}
	return out
}
