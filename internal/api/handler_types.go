package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/terraincognita07/stackcheck/internal/db"
	"github.com/terraincognita07/stackcheck/internal/effects"
	"github.com/terraincognita07/stackcheck/internal/logger"
	"github.com/terraincognita07/stackcheck/internal/metrics"
	"github.com/terraincognita07/stackcheck/internal/services"
)

type Handler struct {
	secretKey         []byte
	location          *time.Location
	log               *logger.Logger
	gatherer          prometheus.Gatherer
	repositories      *db.Repositories
	effectService     *services.EffectService
	skipService       *services.SkipService
	entryService      *services.EntryService
	supplementService *services.SupplementService
	recomputeLimiter  *attemptLimiter
	now               func() time.Time
}

type Options struct {
	SecretKey   string
	Location    *time.Location
	Thresholds  effects.Thresholds
	Concurrency int
	Logger      *logger.Logger
	Recorder    *metrics.Recorder
	Gatherer    prometheus.Gatherer
}

const (
	contextProfileKey      = "profile_id"
	DefaultProfileTokenTTL = 24 * time.Hour

	recomputeLimit  = 6
	recomputeWindow = 10 * time.Minute
)

type profileClaims struct {
	ProfileID uint `json:"pid"`
	jwt.RegisteredClaims
}
