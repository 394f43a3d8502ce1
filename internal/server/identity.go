package server

import (
	"net/http"
	"strconv"
)

// Role of a caller. Supplied by the front proxy via headers and trusted
// verbatim; the server authorizes but never authenticates.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleStudent:
		return Role(s), true
	}
	return "", false
}

// Identity is the caller context injected into every service call:
// who is asking, and with what role. The core never looks at headers.
type Identity struct {
	ID   int64
	Role Role
}

// RequireAdmin gates admin-only operations.
func RequireAdmin(caller Identity) error {
	if caller.Role != RoleAdmin {
		return forbidden("administrator privileges required")
	}
	return nil
}

// EnsureOwnerOrAdmin gates operations on an owned resource.
func EnsureOwnerOrAdmin(ownerID int64, caller Identity) error {
	if caller.Role == RoleAdmin {
		return nil
	}
	if caller.ID != ownerID {
		return forbidden("you can only access your own resources")
	}
	return nil
}

// middleware-ish identity extraction for endpoints that need a caller
func (a *API) RequireUser(next func(http.ResponseWriter, *http.Request, Identity)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idRaw := r.Header.Get("X-User-Id")
		roleRaw := r.Header.Get("X-User-Role")
		if idRaw == "" || roleRaw == "" {
			writeJSON(w, 401, map[string]any{"error": "missing identity headers"})
			return
		}
		id, err := strconv.ParseInt(idRaw, 10, 64)
		if err != nil || id < 1 {
			writeJSON(w, 401, map[string]any{"error": "bad X-User-Id header"})
			return
		}
		role, ok := ParseRole(roleRaw)
		if !ok {
			writeJSON(w, 401, map[string]any{"error": "bad X-User-Role header"})
			return
		}
		next(w, r, Identity{ID: id, Role: role})
	}
}
