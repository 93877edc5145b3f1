package authz

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/oceanix/incident-platform/internal"
)

// DefaultSubdomainHeader is the explicit tenant-signal header. A value sent
// here wins over anything inferred from Origin or Referer.
const DefaultSubdomainHeader = "X-Subdomain"

// TenantContext is the authoritative tenant scope attached to a request after
// post-authentication enforcement. Downstream queries row-scope on TenantID.
type TenantContext struct {
	TenantID string
}

// ExtractTenantLabel infers an advisory tenant label from the request before
// any identity is known. Priority: the explicit subdomain header verbatim,
// then the first hostname label of Origin or Referer when the hostname has at
// least three dot-separated labels and does not start with "www". The second
// return value is false when no signal resolves; that is a valid outcome, not
// an error, and is left for the login-time tenant match to reject.
func ExtractTenantLabel(r *http.Request, headerName string) (string, bool) {
	if headerName == "" {
		headerName = DefaultSubdomainHeader
	}

	if v := r.Header.Get(headerName); v != "" {
		return v, true
	}

	for _, candidate := range []string{r.Header.Get("Origin"), r.Header.Get("Referer")} {
		if candidate == "" {
			continue
		}
		if label, ok := labelFromURL(candidate); ok {
			return label, true
		}
	}

	return "", false
}

func labelFromURL(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	labels := strings.Split(u.Hostname(), ".")
	if len(labels) < 3 {
		return "", false
	}
	if labels[0] == "" || labels[0] == "www" {
		return "", false
	}
	return labels[0], true
}

// ResolveTenant runs post-authentication tenant enforcement for an identity.
// SUPER_ADMIN callers bypass tenancy entirely and get a nil tenant context.
// Every other caller must carry a non-empty enterprise id; without one the
// request is rejected before the permission gate ever runs.
func ResolveTenant(identity *CallerIdentity) (*TenantContext, error) {
	if identity == nil {
		return nil, internal.ErrIdentityMissing
	}

	if identity.IsSuperAdmin() {
		return nil, nil
	}

	if identity.EnterpriseID == nil || *identity.EnterpriseID == "" {
		return nil, internal.ErrInvalidTenant
	}

	return &TenantContext{TenantID: *identity.EnterpriseID}, nil
}
