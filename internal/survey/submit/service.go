package submit

import (
	"context"
	"time"

	"NYCU-SDC/photo-survey-backend/internal"
	"NYCU-SDC/photo-survey-backend/internal/fingerprint"
	"NYCU-SDC/photo-survey-backend/internal/survey"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

//go:generate mockery --name=Store

// Store is the repository of one survey variant. Create must reject a second
// submission for a fingerprint with internal.ErrAlreadySubmitted even when
// ExistsByFingerprint reported none.
type Store[A survey.Answers] interface {
	ExistsByFingerprint(ctx context.Context, fingerprint string) (bool, error)
	Create(ctx context.Context, submission survey.Submission[A]) (survey.Submission[A], error)
}

//go:generate mockery --name=Dispatcher

// Dispatcher hands a summary to the notification workers without blocking.
// It reports whether the summary was queued.
type Dispatcher interface {
	Dispatch(summary survey.Summary) bool
}

type Service[A survey.Answers] struct {
	logger     *zap.Logger
	tracer     trace.Tracer
	store      Store[A]
	dispatcher Dispatcher
	now        func() time.Time
}

func NewService[A survey.Answers](logger *zap.Logger, store Store[A], dispatcher Dispatcher) *Service[A] {
	return &Service[A]{
		logger:     logger,
		tracer:     otel.Tracer("submit/service"),
		store:      store,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// Submit persists validated answers for a visitor and queues the
// notification. The existence check only produces the friendlier error early;
// the store's uniqueness guarantee decides concurrent submissions.
func (s *Service[A]) Submit(ctx context.Context, visitor fingerprint.Visitor, answers A) (survey.Submission[A], error) {
	traceCtx, span := s.tracer.Start(ctx, "Submit")
	defer span.End()
	logger := internal.WithContext(traceCtx, s.logger)

	exists, err := s.store.ExistsByFingerprint(traceCtx, visitor.Fingerprint)
	if err != nil {
		span.RecordError(err)
		return survey.Submission[A]{}, err
	}
	if exists {
		logger.Info("Rejected duplicate submission")
		return survey.Submission[A]{}, internal.ErrAlreadySubmitted
	}

	created, err := s.store.Create(traceCtx, survey.NewSubmission(visitor, answers, s.now()))
	if err != nil {
		span.RecordError(err)
		return survey.Submission[A]{}, err
	}

	logger.Info("Stored survey submission", zap.String("id", created.ID.String()))

	if s.dispatcher != nil && !s.dispatcher.Dispatch(created.Summary()) {
		logger.Warn("Notification for submission was not queued", zap.String("id", created.ID.String()))
	}

	return created, nil
}
