// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const (
	keyCommunityID ctxKey = "community_id"
)

// WithRequest annotates context with common request scoped ids
func WithRequest(ctx context.Context, reqID, communityID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if communityID != "" {
		ctx = context.WithValue(ctx, keyCommunityID, communityID)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return ""
}

// CommunityID returns the community id on the context if present
func CommunityID(ctx context.Context) string {
	if v, ok := ctx.Value(keyCommunityID).(string); ok {
		return v
	}
	return ""
}
