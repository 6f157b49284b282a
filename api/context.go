package api

import (
	"context"

	"github.com/rpupo63/agency-site-backend/models"
)

type keyType string

const principalKey keyType = "principal"

// ctxWithPrincipal attaches the authenticated principal to the context
func ctxWithPrincipal(ctx context.Context, p *models.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// ctxGetPrincipal returns the principal, or nil for anonymous requests
func ctxGetPrincipal(ctx context.Context) *models.Principal {
	p, _ := ctx.Value(principalKey).(*models.Principal)
	return p
}
