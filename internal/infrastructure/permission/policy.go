package permission

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed policy.yaml
var defaultPolicy []byte

// PolicyRule grants role the action on resource.
type PolicyRule struct {
	Role     string `yaml:"role"`
	Resource string `yaml:"resource"`
	Action   string `yaml:"action"`
}

// PolicyFile is the on-disk shape of the permission policy.
type PolicyFile struct {
	// Inherits maps a role to the roles whose grants it also receives.
	Inherits map[string][]string `yaml:"inherits"`
	Policies []PolicyRule        `yaml:"policies"`
}

// LoadPolicyFile reads path, or the built-in policy when path is empty.
func LoadPolicyFile(path string) (*PolicyFile, error) {
	data := defaultPolicy
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read policy file: %w", err)
		}
		data = b
	}
	return ParsePolicy(data)
}

func ParsePolicy(data []byte) (*PolicyFile, error) {
	var pf PolicyFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse policy: %w", err)
	}
	for i, p := range pf.Policies {
		if p.Role == "" || p.Resource == "" || p.Action == "" {
			return nil, fmt.Errorf("policy %d: role, resource and action are required", i)
		}
	}
	return &pf, nil
}

func (pf *PolicyFile) rules() [][]string {
	out := make([][]string, 0, len(pf.Policies))
	for _, p := range pf.Policies {
		out = append(out, []string{p.Role, p.Resource, p.Action})
	}
	return out
}

func (pf *PolicyFile) groupings() [][]string {
	var out [][]string
	for role, parents := range pf.Inherits {
		for _, parent := range parents {
			out = append(out, []string{role, parent})
		}
	}
	return out
}
