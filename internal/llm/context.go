package llm

import "context"

type purposeKey struct{}

// WithPurpose labels the calls made with ctx, e.g. "quiz" or "tutor".
// The label is recorded with each call and shown by `studydeck llm`.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok && p != "" {
		return p
	}
	return "unknown"
}
