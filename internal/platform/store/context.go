package store

import "context"

type (
	communityKey struct{}
	reqIDKey     struct{}
)

// WithCommunity attaches a community id to the context
func WithCommunity(ctx context.Context, communityID string) context.Context {
	return context.WithValue(ctx, communityKey{}, communityID)
}

// CommunityID retrieves a community id from context if present
func CommunityID(ctx context.Context) (string, bool) {
	v := ctx.Value(communityKey{})
	if v == nil {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// WithRequestID attaches a request id to the context
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, reqIDKey{}, id)
}

// RequestID retrieves a request id from context if present
func RequestID(ctx context.Context) (string, bool) {
	v := ctx.Value(reqIDKey{})
	if v == nil {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}
