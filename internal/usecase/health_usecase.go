package usecase

import (
	"context"
	"time"

	"recroot-backend/pkg/redis"

	"github.com/jackc/pgx/v5/pgxpool"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	db *pgxpool.Pool
}

func NewHealthUsecase(db *pgxpool.Pool) HealthUsecase {
	return &healthUsecase{db: db}
}

// Check reports overall status plus per-dependency detail. Redis is an
// optional dependency, so "disabled" is healthy.
func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	result := map[string]string{"status": "ok"}

	if err := u.db.Ping(ctx); err != nil {
		result["status"] = "degraded"
		result["database"] = "down"
	} else {
		result["database"] = "up"
	}

	switch {
	case redis.Client() == nil:
		result["redis"] = "disabled"
	case redis.HealthCheck(ctx) != nil:
		result["redis"] = "down"
	default:
		result["redis"] = "up"
	}

	return result
}
