// Package middleware resolves Depot caller identities from Forge request
// contexts.
package middleware

import (
	"encoding/json"

	"github.com/xraph/forge"

	"github.com/xraph/depot"
)

// Caller builds the caller identity from the request context.
// Priority: Forge user ID (from Authsome) → anonymous (nil).
func Caller(ctx forge.Context) *depot.CallerIdentity {
	if userID := forge.UserIDFromContext(ctx.Context()); userID != "" {
		return &depot.CallerIdentity{Claims: depot.MapClaims{
			depot.ClaimObjectID: {userID},
		}}
	}
	return nil
}

// RequireUser rejects requests whose context carries no authenticated
// user. Handlers behind it can assume Caller returns a non-anonymous
// identity.
func RequireUser() forge.Middleware {
	return func(next forge.Handler) forge.Handler {
		return func(ctx forge.Context) error {
			if Caller(ctx).Anonymous() {
				return denyResponse(ctx)
			}
			return next(ctx)
		}
	}
}

func denyResponse(ctx forge.Context) error {
	ctx.SetHeader("Content-Type", "application/json")
	ctx.Response().WriteHeader(403)
	return json.NewEncoder(ctx.Response()).Encode(map[string]string{"error": "access denied"})
}
