package health

import (
	"context"

	"github.com/shiptrack/api/pkg/logging"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

const (
	StatusUp   = "up"
	StatusDown = "down"
)

// Report is the outcome of one readiness probe, keyed by checker name.
type Report struct {
	Ready  bool              `json:"ready"`
	Checks map[string]string `json:"checks"`
}

// ReadinessUseCase describes readiness verification.
type ReadinessUseCase interface {
	Ready(ctx context.Context) Report
}

type service struct {
	checkers []Checker
	log      logging.Logger
}

// NewService aggregates dependency checkers. With no checkers the service is
// always ready.
func NewService(log logging.Logger, checkers ...Checker) ReadinessUseCase {
	return &service{checkers: checkers, log: log}
}

// Ready runs every checker; failure details are logged, not reported.
func (s *service) Ready(ctx context.Context) Report {
	r := Report{Ready: true, Checks: make(map[string]string, len(s.checkers))}
	for _, ch := range s.checkers {
		if err := ch.Check(ctx); err != nil {
			s.log.Warn(ctx, "readiness check failed", "checker", ch.Name(), "error", err)
			r.Checks[ch.Name()] = StatusDown
			r.Ready = false
			continue
		}
		r.Checks[ch.Name()] = StatusUp
	}
	return r
}
