package models

// FailureKind classifies provider failures for the engine.
// Validation failures are caller-fixable; integration failures are
// transient or upstream and the phase simply degrades.
type FailureKind string

const (
	FailureValidation  FailureKind = "validation"
	FailureIntegration FailureKind = "integration"
)

// ProviderFailure records why a capability call failed.
type ProviderFailure struct {
	Kind    FailureKind `json:"kind" bson:"kind"`
	Message string      `json:"message" bson:"message"`
}

func (f *ProviderFailure) Error() string {
	return string(f.Kind) + ": " + f.Message
}

// ProviderResult is the uniform outcome of a capability call. Exactly one of
// Data or Err is meaningful; a failed call carries Err and empty Data.
type ProviderResult struct {
	Data map[string]any   `json:"data,omitempty" bson:"data,omitempty"`
	Meta map[string]any   `json:"meta,omitempty" bson:"meta,omitempty"`
	Err  *ProviderFailure `json:"error,omitempty" bson:"error,omitempty"`
}

// Succeeded reports whether the provider produced usable data.
func (r *ProviderResult) Succeeded() bool {
	return r != nil && r.Err == nil
}

// Failed reports whether the result carries a failure record.
func (r *ProviderResult) Failed() bool {
	return r != nil && r.Err != nil
}

// NewSuccess builds a successful result.
func NewSuccess(data, meta map[string]any) *ProviderResult {
	return &ProviderResult{Data: data, Meta: meta}
}

// NewFailure builds a failed result for the given kind and message.
func NewFailure(kind FailureKind, message string) *ProviderResult {
	return &ProviderResult{Err: &ProviderFailure{Kind: kind, Message: message}}
}

// ValidationFailure is shorthand for a caller-fixable failure.
func ValidationFailure(message string) *ProviderResult {
	return NewFailure(FailureValidation, message)
}

// IntegrationFailure is shorthand for a transient/upstream failure.
func IntegrationFailure(message string) *ProviderResult {
	return NewFailure(FailureIntegration, message)
}
