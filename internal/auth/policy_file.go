package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/upb/project-manager/models"
)

type policyFile struct {
	Rules []policyRule `toml:"rule"`
}

type policyRule struct {
	Name    string   `toml:"name"`
	Pattern string   `toml:"pattern"`
	Methods []string `toml:"methods"`
	Roles   []string `toml:"roles"`
	Public  bool     `toml:"public"`
}

// LoadPolicyFile reads an ordered route table from a TOML file of
// [[rule]] tables. The result still has to pass NewGate.
func LoadPolicyFile(filename string) ([]RoutePolicy, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	return ParsePolicies(string(data))
}

// ParsePolicies decodes a TOML route table. Unknown keys are rejected.
func ParsePolicies(data string) ([]RoutePolicy, error) {
	var f policyFile
	meta, err := toml.Decode(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode policy file: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("unknown keys in policy file: %s", strings.Join(keys, ", "))
	}
	if len(f.Rules) == 0 {
		return nil, errors.New("policy file defines no rules")
	}

	policies := make([]RoutePolicy, 0, len(f.Rules))
	for _, r := range f.Rules {
		var roles []models.UserRole
		for _, role := range r.Roles {
			roles = append(roles, models.UserRole(role))
		}
		policies = append(policies, RoutePolicy{
			Name:    r.Name,
			Pattern: r.Pattern,
			Methods: r.Methods,
			Roles:   RoleSet(roles...),
			Public:  r.Public,
		})
	}
	return policies, nil
}
