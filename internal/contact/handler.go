package contact

import (
	"context"
	"fmt"
	"net/http"

	"NYCU-SDC/photo-survey-backend/internal"

	handlerutil "github.com/NYCU-SDC/summer/pkg/handler"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/NYCU-SDC/summer/pkg/problem"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const MessageSendFailed = "Unable to send email at this time. Please try again later."

type Response struct {
	Accepted []string `json:"accepted"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type Relayer interface {
	Relay(ctx context.Context, request Request) ([]string, error)
}

type Handler struct {
	logger        *zap.Logger
	validator     *validator.Validate
	problemWriter *problem.HttpWriter
	tracer        trace.Tracer

	relayer Relayer
}

func NewHandler(logger *zap.Logger, validator *validator.Validate, problemWriter *problem.HttpWriter, relayer Relayer) *Handler {
	return &Handler{
		logger:        logger,
		validator:     validator,
		problemWriter: problemWriter,
		tracer:        otel.Tracer("contact/handler"),
		relayer:       relayer,
	}
}

func (h *Handler) SendHandler(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "SendHandler")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	var request Request
	err := handlerutil.ParseAndValidateRequestBody(traceCtx, h.validator, r, &request)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, fmt.Errorf("%w: %w", internal.ErrValidationFailed, err), logger)
		return
	}

	accepted, err := h.relayer.Relay(traceCtx, request)
	if err != nil {
		span.RecordError(err)
		handlerutil.WriteJSONResponse(w, http.StatusInternalServerError, ErrorResponse{Message: MessageSendFailed})
		return
	}

	handlerutil.WriteJSONResponse(w, http.StatusOK, Response{Accepted: accepted})
}
