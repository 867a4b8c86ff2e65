package utils

import (
	"context"

	"review-service/internal/policy"
)

type contextKey string

const ActorKey contextKey = "actor"


// GetActorFromContext returns the requester set by the auth middleware,
// or an anonymous actor when none was set.
func GetActorFromContext(ctx context.Context) policy.Actor {
	actor, ok := ctx.Value(ActorKey).(policy.Actor)
	if !ok {
		return policy.Anonymous()
	}
	return actor
}

func SetActorContext(ctx context.Context, actor policy.Actor) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}
