package authz

import "context"

type ctxKey string

const (
	contextIdentityKey         ctxKey = "caller_identity"
	contextTenantKey           ctxKey = "tenant_context"
	contextAllowAnyResourceKey ctxKey = "allow_any_resource"
)

func ContextWithIdentity(ctx context.Context, identity *CallerIdentity) context.Context {
	return context.WithValue(ctx, contextIdentityKey, identity)
}

func IdentityFromContext(ctx context.Context) (*CallerIdentity, bool) {
	identity, ok := ctx.Value(contextIdentityKey).(*CallerIdentity)
	return identity, ok && identity != nil
}

func ContextWithTenant(ctx context.Context, tenant *TenantContext) context.Context {
	return context.WithValue(ctx, contextTenantKey, tenant)
}

// TenantFromContext returns the enforced tenant scope. SUPER_ADMIN requests
// carry no tenant, so the second return value is false for them.
func TenantFromContext(ctx context.Context) (*TenantContext, bool) {
	tenant, ok := ctx.Value(contextTenantKey).(*TenantContext)
	return tenant, ok && tenant != nil
}

func ContextWithAllowAnyResource(ctx context.Context, allow bool) context.Context {
	return context.WithValue(ctx, contextAllowAnyResourceKey, allow)
}

// AllowAnyResourceFromContext exposes the operation's allow-any-resource flag
// to resource-level scoping in the service layer. The flag never changes the
// authorization decision itself.
func AllowAnyResourceFromContext(ctx context.Context) bool {
	allow, ok := ctx.Value(contextAllowAnyResourceKey).(bool)
	return ok && allow
}
