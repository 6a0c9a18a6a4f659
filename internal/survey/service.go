package survey

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"NYCU-SDC/photo-survey-backend/internal"

	databaseutil "github.com/NYCU-SDC/summer/pkg/database"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const uniqueViolationCode = "23505"

type Querier interface {
	Exists(ctx context.Context, arg ExistsParams) (bool, error)
	Create(ctx context.Context, arg CreateParams) (SurveySubmission, error)
	GetByFingerprint(ctx context.Context, arg GetByFingerprintParams) (SurveySubmission, error)
}

// Service persists submissions of one variant in PostgreSQL. The
// (variant, fingerprint) unique constraint is what guarantees a single
// submission per visitor; ExistsByFingerprint is only a pre-check.
type Service[A Answers] struct {
	logger  *zap.Logger
	queries Querier
	tracer  trace.Tracer
	variant SurveyVariant
}

func NewService[A Answers](logger *zap.Logger, db DBTX) *Service[A] {
	var zero A
	return &Service[A]{
		logger:  logger,
		queries: New(db),
		tracer:  otel.Tracer("survey/service"),
		variant: SurveyVariant(zero.Variant()),
	}
}

func (s *Service[A]) ExistsByFingerprint(ctx context.Context, fingerprint string) (bool, error) {
	traceCtx, span := s.tracer.Start(ctx, "ExistsByFingerprint")
	defer span.End()
	logger := internal.WithContext(traceCtx, s.logger)

	exists, err := s.queries.Exists(traceCtx, ExistsParams{
		Variant:     s.variant,
		Fingerprint: fingerprint,
	})
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "check if submission exists")
		span.RecordError(err)
		return false, fmt.Errorf("%w: %w", internal.ErrStorageUnavailable, err)
	}

	return exists, nil
}

func (s *Service[A]) Create(ctx context.Context, submission Submission[A]) (Submission[A], error) {
	traceCtx, span := s.tracer.Start(ctx, "Create")
	defer span.End()
	logger := internal.WithContext(traceCtx, s.logger)

	answers, err := json.Marshal(submission.Answers)
	if err != nil {
		span.RecordError(err)
		return Submission[A]{}, fmt.Errorf("failed to encode %s answers: %w", s.variant, err)
	}

	metadata, err := json.Marshal(submission.Metadata)
	if err != nil {
		span.RecordError(err)
		return Submission[A]{}, fmt.Errorf("failed to encode %s metadata: %w", s.variant, err)
	}

	row, err := s.queries.Create(traceCtx, CreateParams{
		ID:          submission.ID,
		Variant:     s.variant,
		Fingerprint: submission.Fingerprint,
		Answers:     answers,
		Metadata:    metadata,
		CreatedAt:   pgtype.Timestamptz{Time: submission.CreatedAt, Valid: true},
	})
	if err != nil {
		if isUniqueViolation(err) {
			logger.Info("Concurrent submission rejected by unique constraint")
			return Submission[A]{}, internal.ErrAlreadySubmitted
		}

		err = databaseutil.WrapDBErrorWithKeyValue(err, "survey_submissions", "fingerprint", submission.Fingerprint, logger, "create submission")
		span.RecordError(err)
		return Submission[A]{}, fmt.Errorf("%w: %w", internal.ErrStorageUnavailable, err)
	}

	return fromRow[A](row)
}

func (s *Service[A]) GetByFingerprint(ctx context.Context, fingerprint string) (Submission[A], error) {
	traceCtx, span := s.tracer.Start(ctx, "GetByFingerprint")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	row, err := s.queries.GetByFingerprint(traceCtx, GetByFingerprintParams{
		Variant:     s.variant,
		Fingerprint: fingerprint,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Submission[A]{}, internal.ErrSubmissionNotFound
		}

		err = databaseutil.WrapDBErrorWithKeyValue(err, "survey_submissions", "fingerprint", fingerprint, logger, "get submission by fingerprint")
		span.RecordError(err)
		return Submission[A]{}, fmt.Errorf("%w: %w", internal.ErrStorageUnavailable, err)
	}

	return fromRow[A](row)
}

func fromRow[A Answers](row SurveySubmission) (Submission[A], error) {
	var answers A
	if err := json.Unmarshal(row.Answers, &answers); err != nil {
		return Submission[A]{}, fmt.Errorf("failed to decode answers of submission %s: %w", row.ID, err)
	}

	var metadata Metadata
	if err := json.Unmarshal(row.Metadata, &metadata); err != nil {
		return Submission[A]{}, fmt.Errorf("failed to decode metadata of submission %s: %w", row.ID, err)
	}

	return Submission[A]{
		ID:          row.ID,
		Fingerprint: row.Fingerprint,
		Answers:     answers,
		Metadata:    metadata,
		CreatedAt:   row.CreatedAt.Time.UTC(),
	}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
