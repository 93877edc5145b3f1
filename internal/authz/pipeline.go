package authz

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/oceanix/incident-platform/internal"
)

// IdentityResolver turns a raw bearer credential into a caller identity with
// roles and permission grants already loaded. Verification of the credential
// itself is the resolver's concern; the pipeline only consumes the result.
type IdentityResolver interface {
	Resolve(ctx context.Context, credential string) (*CallerIdentity, error)
}

// Pipeline sequences the per-request authorization stages:
// authenticate, then tenant enforcement, then the permission decision.
// Stages run strictly in order and short-circuit on the first failure, so a
// caller rejected at the tenant gate never reaches the permission gate. Each
// request's run is independent; the pipeline holds no per-request state.
type Pipeline struct {
	resolver IdentityResolver
	logger   *slog.Logger
}

func NewPipeline(resolver IdentityResolver, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{resolver: resolver, logger: logger}
}

// Authenticate resolves the bearer credential into a CallerIdentity and
// attaches it to the request context. Missing, malformed, or unverifiable
// credentials all surface as a 401; transient resolver failures are not
// retried here.
func (p *Pipeline) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		credential := bearerToken(r)
		if credential == "" {
			p.reject(w, r, internal.ErrUnauthenticated, "missing bearer credential")
			return
		}

		identity, err := p.resolver.Resolve(r.Context(), credential)
		if err != nil {
			p.reject(w, r, internal.ErrUnauthenticated, "credential verification failed", "error", err)
			return
		}

		ctx := ContextWithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireTenant runs post-authentication tenant enforcement and attaches the
// resolved TenantContext. SUPER_ADMIN callers pass through without a tenant.
func (p *Pipeline) RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			p.reject(w, r, internal.ErrIdentityMissing, "tenant stage ran without identity")
			return
		}

		tenant, err := ResolveTenant(identity)
		if err != nil {
			p.reject(w, r, err, "tenant enforcement failed",
				"user_id", identity.ID,
				"user_type", identity.UserType)
			return
		}

		ctx := r.Context()
		if tenant != nil {
			ctx = ContextWithTenant(ctx, tenant)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Authorize gates the request on the operation's declared requirement and
// forwards the allow-any-resource flag for downstream resource scoping.
func (p *Pipeline) Authorize(req Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, _ := IdentityFromContext(r.Context())

			decision := Decide(identity, req)
			if !decision.Allowed {
				switch decision.Reason {
				case ReasonIdentityMissing:
					p.reject(w, r, internal.ErrIdentityMissing, "authorize stage ran without identity")
				default:
					p.reject(w, r, internal.ErrInsufficientPermissions, "permission check failed",
						"user_id", identity.ID,
						"required_permissions", req.Permissions,
						"user_permissions", EffectivePermissions(identity).Names())
				}
				return
			}

			ctx := ContextWithAllowAnyResource(r.Context(), req.AllowAnyResource)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Guard composes the full stage sequence for one protected operation.
func (p *Pipeline) Guard(req Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return p.Authenticate(p.RequireTenant(p.Authorize(req)(next)))
	}
}

func (p *Pipeline) reject(w http.ResponseWriter, r *http.Request, err error, msg string, fields ...any) {
	appErr, ok := internal.IsAppError(err)
	if !ok {
		var wrapped *internal.AppError
		if errors.As(err, &wrapped) {
			appErr = wrapped
		} else {
			appErr = internal.NewInternalError("authorization pipeline failure", err)
		}
	}

	fields = append(fields,
		"method", r.Method,
		"path", r.URL.Path,
		"error_code", appErr.Code)
	p.logger.WarnContext(r.Context(), msg, fields...)

	status, body := appErr.ToHTTPResponse()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(body); encodeErr != nil {
		p.logger.Error("failed to encode rejection response", "error", encodeErr)
	}
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[len("Bearer "):])
}
