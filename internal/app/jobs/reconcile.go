package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/yigit/fitnesshub/internal/app/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// runTimeout bounds a single scheduled pass
const runTimeout = 2 * time.Minute

// EnrollmentReconciler realigns class counters with the enrollment records.
// Enrollment records are the source of truth; totalEnrolled and availableSeats
// are shifted by the same delta so capacity stays constant.
//
// A checkout reserves the seat before it writes the enrollment, so a pass can
// observe drift that is only in flight. Drift is corrected once two consecutive
// passes report the same counter and delta, and the write itself is guarded by
// the counter value that was read.
type EnrollmentReconciler struct {
	classRepo      repositories.ClassRepository
	enrollmentRepo repositories.EnrollmentRepository
	logger         zerolog.Logger
	cron           *cron.Cron

	mu      sync.Mutex
	pending map[primitive.ObjectID]drift
}

// drift is what one pass saw for a class
type drift struct {
	observed int
	delta    int
}

// NewEnrollmentReconciler creates a new EnrollmentReconciler
func NewEnrollmentReconciler(classRepo repositories.ClassRepository, enrollmentRepo repositories.EnrollmentRepository, logger zerolog.Logger) *EnrollmentReconciler {
	return &EnrollmentReconciler{
		classRepo:      classRepo,
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
		pending:        make(map[primitive.ObjectID]drift),
	}
}

// RunOnce compares every class against its enrollment count and corrects drift
// that the previous pass already reported. It returns how many classes were adjusted.
func (r *EnrollmentReconciler) RunOnce(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts, err := r.enrollmentRepo.CountByClass(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count enrollments: %w", err)
	}

	classes, err := r.classRepo.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list classes: %w", err)
	}

	seen := make(map[primitive.ObjectID]drift)
	adjusted := 0
	for _, class := range classes {
		current := drift{observed: class.TotalEnrolled, delta: counts[class.ID] - class.TotalEnrolled}
		if current.delta == 0 {
			continue
		}

		if prev, ok := r.pending[class.ID]; !ok || prev != current {
			seen[class.ID] = current
			r.logger.Debug().
				Str("classId", class.ID.Hex()).
				Int("recorded", class.TotalEnrolled).
				Int("actual", counts[class.ID]).
				Msg("Enrollment drift observed")
			continue
		}

		ok, err := r.classRepo.CorrectEnrollment(ctx, class.ID, current.observed, current.delta)
		if err != nil {
			r.logger.Error().Err(err).Str("classId", class.ID.Hex()).Msg("Failed to adjust enrollment counters")
			seen[class.ID] = current
			continue
		}
		if !ok {
			r.logger.Warn().
				Str("classId", class.ID.Hex()).
				Int("recorded", class.TotalEnrolled).
				Int("actual", counts[class.ID]).
				Int("availableSeats", class.AvailableSeats).
				Msg("Enrollment drift left uncorrected: counter moved or seats would go negative")
			seen[class.ID] = current
			continue
		}

		r.logger.Info().
			Str("classId", class.ID.Hex()).
			Int("recorded", class.TotalEnrolled).
			Int("actual", counts[class.ID]).
			Msg("Corrected enrollment drift")
		adjusted++
	}
	r.pending = seen

	return adjusted, nil
}

// Start schedules RunOnce on the cron spec. An empty spec leaves the job disabled.
func (r *EnrollmentReconciler) Start(schedule string) error {
	if schedule == "" {
		r.logger.Info().Msg("Enrollment reconciler disabled")
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		adjusted, err := r.RunOnce(ctx)
		if err != nil {
			r.logger.Error().Err(err).Msg("Enrollment reconciliation failed")
			return
		}
		r.logger.Debug().Int("adjusted", adjusted).Msg("Enrollment reconciliation finished")
	})
	if err != nil {
		return fmt.Errorf("invalid reconcile schedule %q: %w", schedule, err)
	}

	r.cron = c
	c.Start()
	r.logger.Info().Str("schedule", schedule).Msg("Enrollment reconciler started")
	return nil
}

// Stop halts the scheduler and waits for a running pass to finish
func (r *EnrollmentReconciler) Stop() {
	if r.cron == nil {
		return
	}
	<-r.cron.Stop().Done()
}
