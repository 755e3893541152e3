// Package authz holds the role and ownership rules shared by middleware,
// handlers and services. A nil *Principal is an anonymous caller.
package authz

import (
	"strings"

	"offer-marketplace/internal/domain/investment"
	"offer-marketplace/internal/domain/user"
)

type Principal struct {
	ID    string
	Email string
	Role  user.Role
}

func IsAdmin(p *Principal) bool  { return p != nil && p.Role == user.RoleAdmin }
func IsSigner(p *Principal) bool { return p != nil && p.Role == user.RoleSigner }

func IsAuthenticated(p *Principal) bool { return p != nil }

func CanCreateOffer(p *Principal) bool       { return IsAdmin(p) }
func CanManageInvestments(p *Principal) bool { return IsAdmin(p) }
func CanInvest(p *Principal) bool            { return IsAuthenticated(p) }

func CanViewInvestment(p *Principal, ownerID string) bool {
	return IsAdmin(p) || (p != nil && p.ID == ownerID)
}

func CanCancelInvestment(p *Principal, ownerID string, status investment.Status) bool {
	return p != nil && p.ID == ownerID && status == investment.StatusPending
}

type access int

const (
	accessPublic access = iota
	accessAnonymousOnly
	accessAuthenticated
	accessAdmin
)

type pathRule struct {
	path string
	// exact rules do not cover sub-paths
	exact bool
	rule  access
}

var pathRules = []pathRule{
	{path: "/", exact: true, rule: accessAnonymousOnly},
	{path: "/about", rule: accessPublic},
	{path: "/contact", rule: accessPublic},
	{path: "/login", rule: accessAnonymousOnly},
	{path: "/register", rule: accessAnonymousOnly},
	{path: "/forgot-password", rule: accessAnonymousOnly},
	{path: "/reset-password", rule: accessAnonymousOnly},
	{path: "/admin", rule: accessAdmin},
	{path: "/investments", rule: accessAuthenticated},
	{path: "/profile", rule: accessAuthenticated},
	{path: "/offers", rule: accessAuthenticated},
}

// CanAccessPath decides whether the caller may open a client route.
// Unknown paths are allowed.
func CanAccessPath(p *Principal, path string) bool {
	path = normalizePath(path)
	for _, r := range pathRules {
		if !matches(r, path) {
			continue
		}
		switch r.rule {
		case accessAnonymousOnly:
			return p == nil
		case accessAuthenticated:
			return IsAuthenticated(p)
		case accessAdmin:
			return IsAdmin(p)
		default:
			return true
		}
	}
	return true
}

func matches(r pathRule, path string) bool {
	if path == r.path {
		return true
	}
	return !r.exact && strings.HasPrefix(path, r.path+"/")
}

func normalizePath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" || path[0] != '/' {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}
