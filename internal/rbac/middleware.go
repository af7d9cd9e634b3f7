package rbac

import (
	"net/http"
)

var defaultChecker = NewChecker(nil)

func (c *Checker) guard(allowed func(role string) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			if role == "" || !allowed(role) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Require enforces a single permission.
func (c *Checker) Require(perm string) func(http.Handler) http.Handler {
	return c.guard(func(role string) bool { return c.Has(role, perm) })
}

// RequireAny enforces that the role has at least one of the permissions.
func (c *Checker) RequireAny(perms ...string) func(http.Handler) http.Handler {
	return c.guard(func(role string) bool { return c.Any(role, perms...) })
}

// RequireAll enforces that the role has all of the permissions.
func (c *Checker) RequireAll(perms ...string) func(http.Handler) http.Handler {
	return c.guard(func(role string) bool { return c.All(role, perms...) })
}

// Require checks against the default RolePermissions.
func Require(perm string) func(http.Handler) http.Handler { return defaultChecker.Require(perm) }

func RequireAny(perms ...string) func(http.Handler) http.Handler {
	return defaultChecker.RequireAny(perms...)
}
