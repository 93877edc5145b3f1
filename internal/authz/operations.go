package authz

// Operation identifiers for protected routes. Requirements are declared here
// statically and read at route registration, so there is exactly one place
// where an operation's permission metadata lives.
const (
	OpListIncidents   = "incidents.list"
	OpGetIncident     = "incidents.get"
	OpCreateIncident  = "incidents.create"
	OpResolveIncident = "incidents.resolve"
	OpCurrentUser     = "users.me"
	OpDeleteUser      = "users.delete"
)

var operationRequirements = map[string]Requirement{
	OpListIncidents: {
		Permissions:      []string{"view_incidents", "edit_incidents"},
		AllowAnyResource: true,
	},
	OpGetIncident: {
		Permissions: []string{"view_incidents", "edit_incidents"},
	},
	OpCreateIncident: {
		Permissions: []string{"edit_incidents"},
	},
	OpResolveIncident: {
		Permissions: []string{"edit_incidents"},
	},
	// Accessible to any authenticated, tenant-valid caller.
	OpCurrentUser: {},
	OpDeleteUser: {
		Permissions: []string{"delete_users"},
	},
}

// RequirementFor returns the declared requirement for an operation. Unknown
// operations get an empty requirement, which still demands an authenticated,
// tenant-valid caller once the operation is routed through the pipeline.
func RequirementFor(operation string) Requirement {
	return operationRequirements[operation]
}
