package auth

import (
	"errors"
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/upb/project-manager/models"
)

// DenyReason says why the Gate refused a request.
type DenyReason string

const (
	DenyNone            DenyReason = ""
	DenyUnauthenticated DenyReason = "unauthenticated"
	DenyForbidden       DenyReason = "forbidden"
)

// RoutePolicy is one entry of the ordered route table.
//
// Empty Methods matches any method. A nil or empty Roles set admits any
// authenticated principal. Public entries admit everyone and must not
// list roles.
type RoutePolicy struct {
	Name    string
	Pattern string
	Methods []string
	Roles   mapset.Set[models.UserRole]
	Public  bool
}

// RoleSet builds a role set for a RoutePolicy.
func RoleSet(roles ...models.UserRole) mapset.Set[models.UserRole] {
	return mapset.NewSet(roles...)
}

// Route identifies the request being authorized.
type Route struct {
	Method string
	Path   string
}

// Decision is the outcome of Gate.Authorize. Policy points at the entry
// that decided and must not be modified.
type Decision struct {
	Allowed bool
	Reason  DenyReason
	Policy  *RoutePolicy
}

func allow(p *RoutePolicy) Decision { return Decision{Allowed: true, Policy: p} }

func deny(reason DenyReason, p *RoutePolicy) Decision {
	return Decision{Reason: reason, Policy: p}
}

type compiledPolicy struct {
	policy  RoutePolicy
	pattern pathPattern
	methods map[string]struct{}
}

func (c *compiledPolicy) matches(route Route) bool {
	if len(c.methods) > 0 {
		if _, ok := c.methods[strings.ToUpper(route.Method)]; !ok {
			return false
		}
	}
	return c.pattern.match(route.Path)
}

// DefaultPolicy applies when no entry matches: authentication required,
// no role restriction.
var DefaultPolicy = RoutePolicy{Name: "default", Pattern: "/**"}

// Gate evaluates requests against an ordered route table. The first entry
// whose method and pattern match decides. A Gate is immutable and safe for
// concurrent use.
type Gate struct {
	entries  []compiledPolicy
	fallback RoutePolicy
}

// NewGate validates and copies the table.
func NewGate(policies []RoutePolicy) (*Gate, error) {
	g := &Gate{
		entries:  make([]compiledPolicy, 0, len(policies)),
		fallback: DefaultPolicy,
	}

	var errs []error
	for i, p := range policies {
		compiled, err := compilePolicy(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("route policy %d (%s): %w", i, p.Name, err))
			continue
		}
		g.entries = append(g.entries, compiled)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return g, nil
}

func compilePolicy(p RoutePolicy) (compiledPolicy, error) {
	pattern, err := compilePattern(p.Pattern)
	if err != nil {
		return compiledPolicy{}, err
	}

	roles := mapset.NewSet[models.UserRole]()
	if p.Roles != nil {
		for _, role := range p.Roles.ToSlice() {
			if !role.Valid() {
				return compiledPolicy{}, fmt.Errorf("unknown role %q", role)
			}
			roles.Add(role)
		}
	}
	if p.Public && roles.Cardinality() > 0 {
		return compiledPolicy{}, errors.New("public entry must not list roles")
	}

	methods := make(map[string]struct{}, len(p.Methods))
	normalized := make([]string, 0, len(p.Methods))
	for _, m := range p.Methods {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m == "" {
			return compiledPolicy{}, errors.New("empty method")
		}
		if _, dup := methods[m]; !dup {
			normalized = append(normalized, m)
		}
		methods[m] = struct{}{}
	}

	return compiledPolicy{
		policy: RoutePolicy{
			Name:    p.Name,
			Pattern: p.Pattern,
			Methods: normalized,
			Roles:   roles,
			Public:  p.Public,
		},
		pattern: pattern,
		methods: methods,
	}, nil
}

// Lookup returns the entry that governs route.
func (g *Gate) Lookup(route Route) *RoutePolicy {
	for i := range g.entries {
		if g.entries[i].matches(route) {
			return &g.entries[i].policy
		}
	}
	return &g.fallback
}

// Authorize decides whether p may perform route. A nil principal means the
// request carried no valid credentials.
func (g *Gate) Authorize(route Route, p *Principal) Decision {
	policy := g.Lookup(route)

	if policy.Public {
		return allow(policy)
	}
	if p == nil {
		return deny(DenyUnauthenticated, policy)
	}
	if !p.Role.Valid() {
		return deny(DenyForbidden, policy)
	}
	if policy.Roles != nil && policy.Roles.Cardinality() > 0 && !policy.Roles.Contains(p.Role) {
		return deny(DenyForbidden, policy)
	}

	return allow(policy)
}

// Policies returns the names and patterns of the table in evaluation order.
func (g *Gate) Policies() []string {
	out := make([]string, 0, len(g.entries))
	for _, e := range g.entries {
		out = append(out, fmt.Sprintf("%s %v %s", e.policy.Name, e.policy.Methods, e.policy.Pattern))
	}
	return out
}
