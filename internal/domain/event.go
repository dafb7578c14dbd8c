package domain

import (
	"context"
	"time"
)

// RawEvent represents an unprocessed message from the request topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputEvent is the serialized form destined for the result topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// RequestKind selects which evaluation an EvaluationRequest asks for.
type RequestKind string

const (
	KindImpact     RequestKind = "impact"
	KindDeflection RequestKind = "deflection"
	KindThreat     RequestKind = "threat"
)

// EvaluationRequest is the envelope carried on the request topic. Exactly
// the payload named by Kind is read; the others are ignored.
type EvaluationRequest struct {
	ID         string             `json:"id,omitempty"`
	Kind       RequestKind        `json:"kind"`
	Impact     *ImpactRequest     `json:"impact,omitempty"`
	Deflection *DeflectionRequest `json:"deflection,omitempty"`
	Threat     *CloseApproach     `json:"threat,omitempty"`
}

// EvaluationResult carries exactly one payload, matching Kind.
type EvaluationResult struct {
	ID          string              `json:"id"`
	Kind        RequestKind         `json:"kind"`
	EvaluatedAt time.Time           `json:"evaluated_at"`
	Impact      *ImpactAssessment   `json:"impact,omitempty"`
	Deflection  *StrategyComparison `json:"deflection,omitempty"`
	Threat      *ThreatAssessment   `json:"threat,omitempty"`
}
