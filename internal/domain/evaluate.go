package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// ParseRawEvent decodes a request-topic message into an EvaluationRequest.
// A missing kind header falls back to the kind in the body.
func ParseRawEvent(raw RawEvent) (EvaluationRequest, error) {
	var req EvaluationRequest
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return EvaluationRequest{}, fmt.Errorf("parse raw event: %w", err)
	}
	if req.Kind == "" {
		req.Kind = RequestKind(raw.Headers["kind"])
	}
	if req.ID == "" && len(raw.Key) > 0 {
		req.ID = string(raw.Key)
	}
	return req, nil
}

// Evaluate dispatches a request to its calculator. The result id is the
// request id, or a hash of the request when none was supplied. On error no
// result is returned.
func Evaluate(req EvaluationRequest) (EvaluationResult, error) {
	res := EvaluationResult{Kind: req.Kind}

	switch req.Kind {
	case KindImpact:
		if req.Impact == nil {
			return EvaluationResult{}, invalidParameter("impact request has no impact payload")
		}
		a, err := EvaluateImpact(*req.Impact)
		if err != nil {
			return EvaluationResult{}, err
		}
		res.Impact = &a
	case KindDeflection:
		if req.Deflection == nil {
			return EvaluationResult{}, invalidParameter("deflection request has no deflection payload")
		}
		c, err := CompareRequest(*req.Deflection)
		if err != nil {
			return EvaluationResult{}, err
		}
		res.Deflection = &c
	case KindThreat:
		if req.Threat == nil {
			return EvaluationResult{}, invalidParameter("threat request has no threat payload")
		}
		t, err := AssessThreat(*req.Threat)
		if err != nil {
			return EvaluationResult{}, err
		}
		res.Threat = &t
	default:
		return EvaluationResult{}, fmt.Errorf("%w %q", ErrUnknownRequestKind, req.Kind)
	}

	res.ID = req.ID
	if res.ID == "" {
		id, err := requestID(req)
		if err != nil {
			return EvaluationResult{}, err
		}
		res.ID = id
	}
	res.EvaluatedAt = clock.Now().UTC()
	return res, nil
}

// SerializeResult encodes a result for the result topic, keyed by id.
func SerializeResult(res EvaluationResult) (OutputEvent, error) {
	value, err := json.Marshal(res)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize result: %w", err)
	}
	return OutputEvent{
		Key:   []byte(res.ID),
		Value: value,
		Headers: map[string]string{
			"kind":         string(res.Kind),
			"evaluated_at": res.EvaluatedAt.Format(time.RFC3339),
		},
	}, nil
}

// requestID hashes the canonical JSON of a request without its id.
func requestID(req EvaluationRequest) (string, error) {
	req.ID = ""
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("hash request: %w", err)
	}
	return generateID(string(req.Kind), body), nil
}

// generateID produces a deterministic ID: identical inputs replay to the same
// id, so downstream consumers can deduplicate.
func generateID(prefix string, body []byte) string {
	hash := sha256.Sum256(append([]byte(prefix+"|"), body...))
	short := hex.EncodeToString(hash[:8])
	if prefix == "" {
		return short
	}
	return prefix + "-" + short
}
