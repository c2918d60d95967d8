package reconcile

import (
	"strings"

	"github.com/pkordes/frontdesk/internal/domain"
)

// DefaultRole is assigned to admins that belong to no role.
const DefaultRole = domain.RoleReceptionist

// NormalizeRole maps a backend role name onto the four known roles.
// Unknown names become DefaultRole.
func NormalizeRole(raw string) domain.Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "owner":
		return domain.RoleOwner
	case "manager":
		return domain.RoleManager
	case "receptionist":
		return domain.RoleReceptionist
	case "cleaner":
		return domain.RoleCleaner
	}
	return DefaultRole
}

type roleEntry struct {
	name        domain.Role
	members     []string
	permissions domain.Permissions
}

func parseRoles(raw []domain.Record) []roleEntry {
	out := make([]roleEntry, 0, len(raw))
	for _, r := range raw {
		e := roleEntry{
			name:        NormalizeRole(RoleName.Resolve(r, "")),
			permissions: parsePermissions(r["permissions"]),
		}
		if members, ok := r["members"].([]any); ok {
			for _, m := range members {
				if mm, ok := asMap(m); ok {
					if id, ok := AdminIDField.Lookup(domain.Record(mm)); ok {
						e.members = append(e.members, id)
					}
				}
			}
		}
		out = append(out, e)
	}
	return out
}

// parsePermissions reads a module -> action -> bool matrix. Non-boolean
// flags are treated as denied.
func parsePermissions(v any) domain.Permissions {
	out := domain.Permissions{}
	modules, ok := asMap(v)
	if !ok {
		return out
	}
	for module, actions := range modules {
		am, ok := asMap(actions)
		if !ok {
			continue
		}
		out[module] = map[string]bool{}
		for action, allowed := range am {
			b, _ := allowed.(bool)
			out[module][action] = b
		}
	}
	return out
}

// ResolveUser finds the admin behind s among admins, matching on id or on
// the lowercased username, and attaches the role and permission matrix from
// roles. The boolean is false when no admin matches.
//
// An admin listed under several roles keeps the last one. A role missing
// from roles yields an empty permission matrix.
func ResolveUser(admins, roles []domain.Record, s domain.Session) (domain.User, bool) {
	wantID := strings.TrimSpace(s.AdminID)
	wantName := strings.ToLower(strings.TrimSpace(s.Username))

	var (
		admin domain.Record
		found bool
	)
	for _, a := range admins {
		id, _ := AdminIDField.Lookup(a)
		name, _ := AdminUsername.Lookup(a)
		if (wantID != "" && id == wantID) || (wantName != "" && strings.ToLower(name) == wantName) {
			admin, found = a, true
			break
		}
	}
	if !found {
		return domain.User{}, false
	}

	id := AdminIDField.Resolve(admin, "")
	parsed := parseRoles(roles)
	role := DefaultRole
	for _, r := range parsed {
		for _, m := range r.members {
			if m == id {
				role = r.name
			}
		}
	}

	perms := domain.Permissions{}
	for _, r := range parsed {
		if r.name == role {
			perms = r.permissions
			break
		}
	}

	return domain.User{
		ID:          id,
		Name:        AdminName.Resolve(admin, "Unknown"),
		Email:       AdminUsername.Resolve(admin, ""),
		Role:        role,
		Permissions: perms,
	}, true
}
