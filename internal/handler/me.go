package handler

import (
	"net/http"

	"github.com/pkordes/frontdesk/internal/domain"
)

// MeResponse is the body of GET /me.
type MeResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Role        string             `json:"role"`
	IsOwner     bool               `json:"isOwner"`
	Permissions domain.Permissions `json:"permissions"`
}

// GetMe handles GET /me with the current admin, role and permission matrix.
func (s *Server) GetMe(w http.ResponseWriter, r *http.Request) {
	u, err := s.access.CurrentUser(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	perms := u.Permissions
	if perms == nil {
		perms = domain.Permissions{}
	}
	writeJSON(w, http.StatusOK, MeResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		IsOwner:     u.IsOwner(),
		Permissions: perms,
	})
}
