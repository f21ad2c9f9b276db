// AngelaMos | 2026
// policy.go

package policy

import "github.com/carterperez-dev/jobboard/internal/identity"

// Resources expose only the owner ids a decision needs. Repositories resolve
// the ownership chain with joins so no entity graph is walked here.
type CompanyResource interface {
	OwnerUserID() int64
}

type JobResource interface {
	CompanyOwnerUserID() int64
}

type ApplicationResource interface {
	CandidateUserID() int64
	CompanyOwnerUserID() int64
}

// Authenticated allows any verified principal.
func Authenticated(p identity.Principal) Decision {
	if !p.IsAuthenticated() {
		return deny(ReasonUnauthenticated)
	}
	return allow()
}

// RequireRole allows an authenticated principal holding one of roles. It is
// the role-only step that runs before any entity is loaded.
func RequireRole(p identity.Principal, roles ...identity.Role) Decision {
	if !p.IsAuthenticated() {
		return deny(ReasonUnauthenticated)
	}
	for _, r := range roles {
		if p.Role == r {
			return allow()
		}
	}
	return deny(ReasonRoleNotAllowed)
}

func CanCreateCompany(p identity.Principal) Decision {
	return RequireRole(p, identity.RoleCompany)
}

// CanCreateJob requires a COMPANY principal that owns company. Pass nil when
// the principal has no live company.
func CanCreateJob(p identity.Principal, company CompanyResource) Decision {
	if d := RequireRole(p, identity.RoleCompany); !d.Allowed {
		return d
	}
	if company == nil {
		return deny(ReasonCompanyRequired)
	}
	if !p.Owns(company.OwnerUserID()) {
		return deny(ReasonNotOwner)
	}
	return allow()
}

func CanApplyToJob(p identity.Principal) Decision {
	return RequireRole(p, identity.RoleCandidate)
}

func CanViewApplication(p identity.Principal, app ApplicationResource) Decision {
	if !p.IsAuthenticated() {
		return deny(ReasonUnauthenticated)
	}

	switch p.Role {
	case identity.RoleAdmin:
		return allow()
	case identity.RoleCandidate:
		if p.Owns(app.CandidateUserID()) {
			return allow()
		}
	case identity.RoleCompany:
		if p.Owns(app.CompanyOwnerUserID()) {
			return allow()
		}
	}

	return deny(ReasonNotOwner)
}

// CanDeleteApplication matches CanViewApplication: admin, the candidate, or
// the company that owns the job.
func CanDeleteApplication(p identity.Principal, app ApplicationResource) Decision {
	return CanViewApplication(p, app)
}

// CanManageCompany grants direct ownership only. ADMIN has no override.
func CanManageCompany(p identity.Principal, company CompanyResource) Decision {
	if !p.IsAuthenticated() {
		return deny(ReasonUnauthenticated)
	}
	if !p.Owns(company.OwnerUserID()) {
		return deny(ReasonNotOwner)
	}
	return allow()
}

// CanManageJob grants the owning company's user only. ADMIN has no override.
func CanManageJob(p identity.Principal, job JobResource) Decision {
	if !p.IsAuthenticated() {
		return deny(ReasonUnauthenticated)
	}
	if !p.Owns(job.CompanyOwnerUserID()) {
		return deny(ReasonNotOwner)
	}
	return allow()
}

func CanUpdateApplicationStatus(p identity.Principal, app ApplicationResource) Decision {
	if d := RequireRole(p, identity.RoleCompany); !d.Allowed {
		return d
	}
	if !p.Owns(app.CompanyOwnerUserID()) {
		return deny(ReasonNotOwner)
	}
	return allow()
}

func CanListJobApplications(p identity.Principal, job JobResource) Decision {
	if d := RequireRole(p, identity.RoleCompany); !d.Allowed {
		return d
	}
	return CanManageJob(p, job)
}

func CanListOwnApplications(p identity.Principal) Decision {
	return RequireRole(p, identity.RoleCandidate)
}

func CanViewOwnCompany(p identity.Principal) Decision {
	return RequireRole(p, identity.RoleCompany)
}

func CanListUsers(p identity.Principal) Decision {
	return RequireRole(p, identity.RoleAdmin)
}

// CanCreateUserWithRole lets anyone, including anonymous callers, create
// CANDIDATE and COMPANY users. ADMIN users need an ADMIN principal.
func CanCreateUserWithRole(p identity.Principal, role identity.Role) Decision {
	if role != identity.RoleAdmin {
		return allow()
	}
	return RequireRole(p, identity.RoleAdmin)
}

// CanViewUser lets any authenticated principal read a user profile.
func CanViewUser(p identity.Principal) Decision {
	return Authenticated(p)
}

// CanListOwnJobs mirrors CanCreateJob: the caller must own a live company.
func CanListOwnJobs(p identity.Principal, company CompanyResource) Decision {
	return CanCreateJob(p, company)
}
