package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"NYCU-SDC/photo-survey-backend/internal"
	"NYCU-SDC/photo-survey-backend/internal/survey"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const fingerprintIndexName = "fingerprint_unique"

// CollectionName returns the collection that holds submissions of a variant.
func CollectionName(variant survey.Variant) string {
	switch variant {
	case survey.VariantPhotographer:
		return "photographersurveys"
	case survey.VariantUser:
		return "usersurveys"
	}
	return string(variant) + "surveys"
}

type document[A survey.Answers] struct {
	ID          string          `bson:"_id"`
	Fingerprint string          `bson:"fingerprint"`
	Answers     A               `bson:",inline"`
	Metadata    survey.Metadata `bson:"metadata"`
	CreatedAt   time.Time       `bson:"createdAt"`
}

// Store keeps submissions of one variant in their own MongoDB collection.
// A unique index on fingerprint plays the role of the relational unique
// constraint.
type Store[A survey.Answers] struct {
	logger     *zap.Logger
	collection *mongo.Collection
	tracer     trace.Tracer
}

func NewStore[A survey.Answers](logger *zap.Logger, db *mongo.Database) *Store[A] {
	var zero A
	return &Store[A]{
		logger:     logger,
		collection: db.Collection(CollectionName(zero.Variant())),
		tracer:     otel.Tracer("survey/mongostore"),
	}
}

// EnsureIndexes creates the unique fingerprint index. It is idempotent.
func (s *Store[A]) EnsureIndexes(ctx context.Context) error {
	traceCtx, span := s.tracer.Start(ctx, "EnsureIndexes")
	defer span.End()

	_, err := s.collection.Indexes().CreateOne(traceCtx, mongo.IndexModel{
		Keys:    bson.D{{Key: "fingerprint", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(fingerprintIndexName),
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create fingerprint index on %s: %w", s.collection.Name(), err)
	}

	s.logger.Info("Ensured fingerprint index", zap.String("collection", s.collection.Name()))
	return nil
}

func (s *Store[A]) ExistsByFingerprint(ctx context.Context, fingerprint string) (bool, error) {
	traceCtx, span := s.tracer.Start(ctx, "ExistsByFingerprint")
	defer span.End()
	logger := internal.WithContext(traceCtx, s.logger)

	count, err := s.collection.CountDocuments(traceCtx, bson.D{{Key: "fingerprint", Value: fingerprint}}, options.Count().SetLimit(1))
	if err != nil {
		logger.Error("Failed to count submissions", zap.String("collection", s.collection.Name()), zap.Error(err))
		span.RecordError(err)
		return false, fmt.Errorf("%w: %w", internal.ErrStorageUnavailable, err)
	}

	return count > 0, nil
}

func (s *Store[A]) Create(ctx context.Context, submission survey.Submission[A]) (survey.Submission[A], error) {
	traceCtx, span := s.tracer.Start(ctx, "Create")
	defer span.End()
	logger := internal.WithContext(traceCtx, s.logger)

	_, err := s.collection.InsertOne(traceCtx, document[A]{
		ID:          submission.ID.String(),
		Fingerprint: submission.Fingerprint,
		Answers:     submission.Answers,
		Metadata:    submission.Metadata,
		CreatedAt:   submission.CreatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			logger.Info("Concurrent submission rejected by unique index")
			return survey.Submission[A]{}, internal.ErrAlreadySubmitted
		}

		logger.Error("Failed to insert submission", zap.String("collection", s.collection.Name()), zap.Error(err))
		span.RecordError(err)
		return survey.Submission[A]{}, fmt.Errorf("%w: %w", internal.ErrStorageUnavailable, err)
	}

	return submission, nil
}

func (s *Store[A]) GetByFingerprint(ctx context.Context, fingerprint string) (survey.Submission[A], error) {
	traceCtx, span := s.tracer.Start(ctx, "GetByFingerprint")
	defer span.End()
	logger := internal.WithContext(traceCtx, s.logger)

	var doc document[A]
	err := s.collection.FindOne(traceCtx, bson.D{{Key: "fingerprint", Value: fingerprint}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return survey.Submission[A]{}, internal.ErrSubmissionNotFound
		}

		logger.Error("Failed to find submission", zap.String("collection", s.collection.Name()), zap.Error(err))
		span.RecordError(err)
		return survey.Submission[A]{}, fmt.Errorf("%w: %w", internal.ErrStorageUnavailable, err)
	}

	return fromDocument(doc)
}

func fromDocument[A survey.Answers](doc document[A]) (survey.Submission[A], error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return survey.Submission[A]{}, fmt.Errorf("invalid submission id %q: %w", doc.ID, err)
	}

	metadata := doc.Metadata
	if metadata.FirstSeenAt != nil {
		firstSeen := metadata.FirstSeenAt.UTC()
		metadata.FirstSeenAt = &firstSeen
	}
	if metadata.LastSeenAt != nil {
		lastSeen := metadata.LastSeenAt.UTC()
		metadata.LastSeenAt = &lastSeen
	}

	return survey.Submission[A]{
		ID:          id,
		Fingerprint: doc.Fingerprint,
		Answers:     doc.Answers,
		Metadata:    metadata,
		CreatedAt:   doc.CreatedAt.UTC(),
	}, nil
}
