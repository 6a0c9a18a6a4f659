package submit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"NYCU-SDC/photo-survey-backend/internal"
	"NYCU-SDC/photo-survey-backend/internal/fingerprint"
	"NYCU-SDC/photo-survey-backend/internal/survey"

	handlerutil "github.com/NYCU-SDC/summer/pkg/handler"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	fingerprintField = "fingerprint"
	maxBodyBytes     = 1 << 20

	MessageSubmitted        = "Survey submitted successfully"
	MessageInvalidData      = "Invalid data"
	MessageAlreadySubmitted = "You have already submitted this survey"
	MessageInternalError    = "Internal Server Error"
)

type Response struct {
	Message string            `json:"message"`
	Data    any               `json:"data,omitempty"`
	Errors  survey.Violations `json:"errors,omitempty"`
}

type Operator[A survey.Answers] interface {
	Submit(ctx context.Context, visitor fingerprint.Visitor, answers A) (survey.Submission[A], error)
}

type VisitorResolver interface {
	Resolve(req *http.Request, submitted string) fingerprint.Visitor
}

// Handler serves the submission endpoint of one survey variant.
type Handler[A survey.Answers] struct {
	logger    *zap.Logger
	validator *validator.Validate
	resolver  VisitorResolver
	operator  Operator[A]
	tracer    trace.Tracer
}

func NewHandler[A survey.Answers](logger *zap.Logger, validator *validator.Validate, resolver VisitorResolver, operator Operator[A]) *Handler[A] {
	return &Handler[A]{
		logger:    logger,
		validator: validator,
		resolver:  resolver,
		operator:  operator,
		tracer:    otel.Tracer("submit/handler"),
	}
}

// SubmitHandler validates and stores one survey submission
func (h *Handler[A]) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "SubmitHandler")
	defer span.End()
	logger := internal.WithContext(traceCtx, h.logger)

	var payload map[string]any
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&payload)
	if err != nil {
		logger.Debug("Failed to decode survey payload", zap.Error(err))
		handlerutil.WriteJSONResponse(w, http.StatusBadRequest, Response{
			Message: MessageInvalidData,
			Errors:  survey.Violations{{Path: "body", Message: "Payload is not valid JSON"}},
		})
		return
	}

	submitted, _ := payload[fingerprintField].(string)
	delete(payload, fingerprintField)

	var zero A
	visitor := h.resolver.Resolve(r, submitted)
	traceCtx = internal.WithSubmission(traceCtx, zero.Variant().String(), visitor.Fingerprint)
	logger = internal.WithContext(traceCtx, h.logger)

	answers, violations := survey.Decode[A](h.validator, payload)
	if violations != nil {
		logger.Debug("Rejected invalid survey payload", zap.Int("violations", len(violations)))
		handlerutil.WriteJSONResponse(w, http.StatusBadRequest, Response{
			Message: MessageInvalidData,
			Errors:  violations,
		})
		return
	}

	submission, err := h.operator.Submit(traceCtx, visitor, answers)
	if err != nil {
		if errors.Is(err, internal.ErrAlreadySubmitted) {
			handlerutil.WriteJSONResponse(w, http.StatusBadRequest, Response{Message: MessageAlreadySubmitted})
			return
		}

		logger.Error("Failed to submit survey", zap.Error(err))
		span.RecordError(err)
		handlerutil.WriteJSONResponse(w, http.StatusInternalServerError, Response{Message: MessageInternalError})
		return
	}

	handlerutil.WriteJSONResponse(w, http.StatusCreated, Response{
		Message: MessageSubmitted,
		Data:    submission,
	})
}
