package api

import (
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/terraincognita07/stackcheck/internal/logger"
	"gorm.io/gorm"
)

func NewHandler(database *gorm.DB, options Options) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	secretKey := strings.TrimSpace(options.SecretKey)
	if secretKey == "" {
		return nil, errors.New("secret key is required")
	}

	location := options.Location
	if location == nil {
		location = time.UTC
	}
	log := options.Logger
	if log == nil {
		log = logger.NewNop()
	}
	gatherer := options.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	handler := &Handler{
		secretKey:        []byte(secretKey),
		location:         location,
		log:              log,
		gatherer:         gatherer,
		recomputeLimiter: newAttemptLimiter(),
		now:              time.Now,
	}
	return handler.withDependencies(database, options), nil
}
