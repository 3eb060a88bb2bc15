package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPolicyFile is the default policy file name.
const DefaultPolicyFile = ".a11yscan"

// ErrPolicyNotFound is returned when the policy file does not exist.
var ErrPolicyNotFound = errors.New("policy file not found")

// LoadPolicyFile loads a rule policy from a YAML file.
// If the file does not exist, it returns ErrPolicyNotFound.
// Callers should handle this error appropriately based on whether
// the policy file path was explicitly specified by the user.
func LoadPolicyFile(path string) (*Policy, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided policy path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPolicyNotFound
		}
		return nil, err
	}

	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}

	// Initialize Rules map if nil
	if p.Rules == nil {
		p.Rules = make(map[string]RulePolicy)
	}

	return &p, nil
}

// FindPolicyFile searches for the policy file in the following order:
// 1. If policyPath is specified, use it directly
// 2. Look for .a11yscan in the current directory
// 3. Look for .a11yscan in the user's home directory
//
// Returns the path to the policy file if found, or empty string if not found.
func FindPolicyFile(policyPath string) string {
	// If explicit path is provided, use it
	if policyPath != "" {
		if _, err := os.Stat(policyPath); err == nil {
			return policyPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdPolicy := filepath.Join(cwd, DefaultPolicyFile)
		if _, err := os.Stat(cwdPolicy); err == nil {
			return cwdPolicy
		}
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homePolicy := filepath.Join(home, DefaultPolicyFile)
		if _, err := os.Stat(homePolicy); err == nil {
			return homePolicy
		}
	}

	return ""
}
