package authz

// Requirement is the per-operation authorization metadata declared at route
// registration time. Permissions are matched with OR semantics: the caller
// needs at least one of them, not all. AllowAnyResource is carried through to
// downstream resource scoping and never affects the pass/fail decision.
type Requirement struct {
	Permissions      []string
	AllowAnyResource bool
}

// Empty reports whether the requirement declares no permissions at all, which
// makes the operation accessible to any authenticated, tenant-valid caller.
func (r Requirement) Empty() bool {
	return len(r.Permissions) == 0
}

type Reason string

const (
	ReasonAllowed                 Reason = "ALLOWED"
	ReasonSuperAdminBypass        Reason = "SUPER_ADMIN_BYPASS"
	ReasonNoRequirement           Reason = "NO_REQUIREMENT"
	ReasonIdentityMissing         Reason = "IDENTITY_MISSING"
	ReasonInsufficientPermissions Reason = "INSUFFICIENT_PERMISSIONS"
)

// Decision is the ephemeral outcome of one authorization check.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Decide evaluates the permission gate for one operation invocation. The
// checks run in a fixed order:
//
//  1. missing identity fails outright
//  2. SUPER_ADMIN passes unconditionally
//  3. an empty requirement passes
//  4. otherwise the caller's effective set must intersect the required set
//
// Tenant resolution is intentionally not part of this decision; the pipeline
// runs it as a separate gate before this one.
func Decide(identity *CallerIdentity, req Requirement) Decision {
	if identity == nil {
		return Decision{Allowed: false, Reason: ReasonIdentityMissing}
	}

	if identity.IsSuperAdmin() {
		return Decision{Allowed: true, Reason: ReasonSuperAdminBypass}
	}

	if req.Empty() {
		return Decision{Allowed: true, Reason: ReasonNoRequirement}
	}

	if EffectivePermissions(identity).Intersects(req.Permissions) {
		return Decision{Allowed: true, Reason: ReasonAllowed}
	}

	return Decision{Allowed: false, Reason: ReasonInsufficientPermissions}
}
