package domain

import "context"

// Session identifies the admin behind a request. It is built once per
// request by middleware and carried in the context; business logic reads it
// through SessionFromContext only.
type Session struct {
	AdminID  string
	Username string
	Token    string // bearer token forwarded to the hotel backend
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session stored by WithSession, or the zero
// Session when there is none.
func SessionFromContext(ctx context.Context) Session {
	s, _ := ctx.Value(sessionKey{}).(Session)
	return s
}

// Role is an admin role name.
type Role string

const (
	RoleOwner        Role = "owner"
	RoleManager      Role = "Manager"
	RoleReceptionist Role = "Receptionist"
	RoleCleaner      Role = "Cleaner"
)

// Permission modules.
const (
	ModuleBookingManagement   = "bookingManagement"
	ModuleRoomManagement      = "roomManagement"
	ModuleCustomerList        = "customerList"
	ModuleTM30Verification    = "tm30Verification"
	ModuleRolesAndPermissions = "rolesAndPermissions"
)

// Permission actions.
const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionEdit   = "edit"
	ActionDelete = "delete"
	ActionExport = "export"
)

// Permissions maps module -> action -> allowed.
type Permissions map[string]map[string]bool

// Can reports whether action is allowed on module. Unknown modules and
// actions are denied.
func (p Permissions) Can(module, action string) bool {
	return p[module][action]
}

// User is the admin resolved for a session.
type User struct {
	ID          string
	Name        string
	Email       string
	Role        Role
	Permissions Permissions
}

// IsOwner reports whether the user holds the owner role.
func (u User) IsOwner() bool {
	return u.Role == RoleOwner
}
