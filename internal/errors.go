package internal

import (
	"errors"

	"github.com/NYCU-SDC/summer/pkg/problem"
)

var (
	ErrValidationFailed = errors.New("validation failed")

	// Survey Errors
	ErrAlreadySubmitted   = errors.New("survey already submitted for this fingerprint")
	ErrSubmissionNotFound = errors.New("survey submission not found")
	ErrStorageUnavailable = errors.New("survey storage unavailable")

	// Contact Errors
	ErrMailNotConfigured = errors.New("mail sender is not configured")
	ErrMailSendFailed    = errors.New("failed to send email")
)

func NewProblemWriter() *problem.HttpWriter {
	return problem.NewWithMapping(ErrorHandler)
}

// ErrorHandler maps errors written through the problem writer. Survey and
// contact responses carry flat message bodies and are written by their
// handlers, so only request validation reaches this mapping.
func ErrorHandler(err error) problem.Problem {
	switch {
	case errors.Is(err, ErrValidationFailed):
		return problem.NewValidateProblem("validation failed")
	}
	return problem.Problem{}
}
