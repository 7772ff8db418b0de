package apollo

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// VerificationPolicy decides which provider-attested contact values count
// as verified. The zero value accepts nothing; start from
// DefaultVerificationPolicy or LoadVerificationPolicy.
type VerificationPolicy struct {
	EmailStatuses []string `yaml:"email_statuses"`
	EmailTypes    []string `yaml:"email_types"`
	PhoneStatuses []string `yaml:"phone_statuses"`
	PhoneLabels   []string `yaml:"phone_labels"`
}

// DefaultVerificationPolicy returns the policy the extractor ships with:
// provider-verified work emails and provider-verified mobile numbers.
func DefaultVerificationPolicy() VerificationPolicy {
	return VerificationPolicy{
		EmailStatuses: []string{"verified"},
		EmailTypes:    []string{"work", "email"},
		PhoneStatuses: []string{"verified"},
		PhoneLabels:   []string{"mobile"},
	}
}

// LoadVerificationPolicy reads a policy from a YAML file. Lists left
// empty in the file fall back to the default policy's values.
func LoadVerificationPolicy(path string) (VerificationPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return VerificationPolicy{}, eris.Wrapf(err, "apollo: read policy %s", path)
	}

	// The YAML has a top-level "verification" key
	var wrapper struct {
		Verification VerificationPolicy `yaml:"verification"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return VerificationPolicy{}, eris.Wrap(err, "apollo: parse policy")
	}

	p := wrapper.Verification
	defaults := DefaultVerificationPolicy()
	if len(p.EmailStatuses) == 0 {
		p.EmailStatuses = defaults.EmailStatuses
	}
	if len(p.EmailTypes) == 0 {
		p.EmailTypes = defaults.EmailTypes
	}
	if len(p.PhoneStatuses) == 0 {
		p.PhoneStatuses = defaults.PhoneStatuses
	}
	if len(p.PhoneLabels) == 0 {
		p.PhoneLabels = defaults.PhoneLabels
	}

	return p, nil
}
