package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
)

// RequestEvaluator implements Evaluator with the domain calculators.
type RequestEvaluator struct {
	logger *slog.Logger
}

// NewEvaluator creates a RequestEvaluator.
func NewEvaluator(logger *slog.Logger) *RequestEvaluator {
	return &RequestEvaluator{logger: logger}
}

func (e *RequestEvaluator) Evaluate(_ context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	req, err := domain.ParseRawEvent(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	res, err := domain.Evaluate(req)
	if err != nil {
		return domain.OutputEvent{}, err
	}
	e.logger.Debug("request evaluated", "request_id", res.ID, "kind", res.Kind)

	return domain.SerializeResult(res)
}

// errorReason buckets an evaluation failure for the errors metric.
func errorReason(err error) string {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, domain.ErrInvalidParameter), errors.Is(err, domain.ErrInvalidSchedule):
		return "invalid"
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return "parse"
	default:
		return "internal"
	}
}
