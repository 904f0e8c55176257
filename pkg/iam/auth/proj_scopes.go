package auth

// ============================================================================
// DOMAIN-SPECIFIC SCOPES - HIRING PORTAL
// ============================================================================

const (
	ScopeAll = "*"

	// Job scopes
	ScopeJobsAll    = "jobs:*"
	ScopeJobsRead   = "jobs:read"
	ScopeJobsWrite  = "jobs:write"
	ScopeJobsManage = "jobs:manage" // Change status, view applicants

	// Application scopes
	ScopeApplicationsAll    = "applications:*"
	ScopeApplicationsRead   = "applications:read"
	ScopeApplicationsSubmit = "applications:submit"

	// Profile field scopes
	ScopeProfileFieldsAll   = "profile_fields:*"
	ScopeProfileFieldsRead  = "profile_fields:read"
	ScopeProfileFieldsWrite = "profile_fields:write"
)

// RoleScopes lists what each role may do
var RoleScopes = map[Role][]string{
	RoleAdmin: {
		ScopeJobsAll,
		ScopeApplicationsRead,
		ScopeProfileFieldsAll,
	},
	RoleApplicant: {
		ScopeJobsRead,
		ScopeApplicationsSubmit,
		ScopeProfileFieldsRead,
	},
}

// ScopeDescriptions provides descriptions for scopes
var ScopeDescriptions = map[string]string{
	ScopeJobsAll:    "Full access to job postings",
	ScopeJobsRead:   "View active job postings",
	ScopeJobsWrite:  "Create job postings",
	ScopeJobsManage: "Change job status and review applicants",

	ScopeApplicationsAll:    "Full access to applications",
	ScopeApplicationsRead:   "View submitted applications",
	ScopeApplicationsSubmit: "Apply to job postings",

	ScopeProfileFieldsAll:   "Full access to the application form configuration",
	ScopeProfileFieldsRead:  "View the application form configuration",
	ScopeProfileFieldsWrite: "Edit the application form configuration",
}

// HasScope reports whether granted covers required, honoring "<resource>:*" and "*"
func HasScope(granted []string, required string) bool {
	for _, g := range granted {
		if g == ScopeAll || g == required {
			return true
		}
		if len(g) > 2 && g[len(g)-2:] == ":*" {
			prefix := g[:len(g)-1]
			if len(required) > len(prefix) && required[:len(prefix)] == prefix {
				return true
			}
		}
	}
	return false
}
