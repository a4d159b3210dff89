/*
Package auth provides the role model, the capability check, and bearer-token
sessions.

PURPOSE:
  Authorization used to be re-checked ad hoc in three places (route guard,
  sidebar, per-page). Here it collapses into a single question -
  Can(role, action, resource) - consulted once at the service boundary by the
  HTTP middleware. Nothing else in the codebase inspects roles.

SESSIONS:
  The application is not an identity provider; it consumes an opaque
  "current user + role". Sessions are HMAC-signed JWTs carrying the user id,
  email and role, issued at login and verified per request.
*/
package auth

// Role is an application role.
type Role string

const (
	RoleDirector          Role = "Director"
	RoleAssistantDirector Role = "Assistant Director"
	RoleAdmin             Role = "Admin"
	RoleCoordinator       Role = "Co-ordinator"
	RoleEmployee          Role = "Employee"
)

func (r Role) Valid() bool {
	switch r {
	case RoleDirector, RoleAssistantDirector, RoleAdmin, RoleCoordinator, RoleEmployee:
		return true
	}
	return false
}

// Action is what the caller wants to do with a resource.
type Action string

const (
	ActionView   Action = "view"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
	ActionManage Action = "manage" // admin-level control
)

// Resource is what the action applies to.
type Resource string

const (
	ResourceDashboard   Resource = "dashboard"
	ResourceWorks       Resource = "works"
	ResourceEmployees   Resource = "employees"
	ResourceQuotations  Resource = "quotations"
	ResourceHierarchy   Resource = "hierarchy"
	ResourceContractors Resource = "contractors"
	ResourcePayments    Resource = "payments"
	ResourceUsers       Resource = "users"
)

// viewAccess mirrors the navigation access lists: which roles can see each
// area at all. Directors see everything.
var viewAccess = map[Resource][]Role{
	ResourceDashboard:   {RoleDirector, RoleAssistantDirector, RoleAdmin, RoleCoordinator, RoleEmployee},
	ResourceWorks:       {RoleDirector, RoleAssistantDirector, RoleAdmin, RoleCoordinator},
	ResourceEmployees:   {RoleDirector, RoleAssistantDirector},
	ResourceQuotations:  {RoleDirector, RoleAssistantDirector, RoleAdmin},
	ResourceHierarchy:   {RoleDirector, RoleAssistantDirector},
	ResourceContractors: {RoleDirector, RoleAssistantDirector, RoleAdmin},
	ResourcePayments:    {RoleDirector, RoleAssistantDirector, RoleAdmin},
	ResourceUsers:       {RoleDirector, RoleAssistantDirector, RoleAdmin},
}

// Can is the single authorization check. Edits require view access plus a
// writing role; deletes and user management stay with directors and admins.
func Can(role Role, action Action, resource Resource) bool {
	if !role.Valid() {
		return false
	}

	switch action {
	case ActionView:
		return canView(role, resource)
	case ActionEdit:
		// Employees are read-only everywhere.
		return canView(role, resource) && role != RoleEmployee
	case ActionDelete, ActionManage:
		switch role {
		case RoleDirector, RoleAssistantDirector, RoleAdmin:
			return canView(role, resource)
		}
		return false
	}
	return false
}

func canView(role Role, resource Resource) bool {
	for _, allowed := range viewAccess[resource] {
		if allowed == role {
			return true
		}
	}
	return false
}
