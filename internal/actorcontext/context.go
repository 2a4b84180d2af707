// Package actorcontext carries the acting operator's identity through
// a request. The identity provider at the edge (session middleware)
// sets it; the engine refuses to commit a sale without it.
package actorcontext

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type ctxKey struct{}

func WithOperator(ctx context.Context, id snowflake.ID) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func OperatorID(ctx context.Context) (snowflake.ID, bool) {
	id, ok := ctx.Value(ctxKey{}).(snowflake.ID)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}
