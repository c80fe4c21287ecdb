package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultProfile = "thorough"

// Prompt verbosity levels.
const (
	VerbosityConcise  = "concise"
	VerbosityDetailed = "detailed"
)

// Profile is a review strictness setting: how long to wait, which model
// to ask and how much prompt to send.
type Profile struct {
	Name      string        `yaml:"-"`
	Timeout   time.Duration `yaml:"timeout"`
	Model     string        `yaml:"model"`
	Verbosity string        `yaml:"verbosity"`
}

func builtinProfiles() map[string]Profile {
	return map[string]Profile{
		"quick": {
			Name:      "quick",
			Timeout:   7 * time.Second,
			Model:     "gpt-4o-mini",
			Verbosity: VerbosityConcise,
		},
		"thorough": {
			Name:      "thorough",
			Timeout:   20 * time.Second,
			Model:     "gpt-4",
			Verbosity: VerbosityDetailed,
		},
	}
}

type profilesFile struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// LoadProfiles returns the built-in profiles merged with the ones defined
// in path. Fields left empty in the file keep the built-in value when the
// name already exists.
func LoadProfiles(path string) (map[string]Profile, error) {
	profiles := builtinProfiles()
	if path == "" {
		return profiles, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f profilesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	for name, p := range f.Profiles {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		merged := mergeProfile(profiles[name], p)
		merged.Name = name
		if err := merged.validate(); err != nil {
			return nil, fmt.Errorf("profile %s: %w", name, err)
		}
		profiles[name] = merged
	}

	return profiles, nil
}

func mergeProfile(base, over Profile) Profile {
	if over.Timeout > 0 {
		base.Timeout = over.Timeout
	}
	if over.Model != "" {
		base.Model = over.Model
	}
	if over.Verbosity != "" {
		base.Verbosity = over.Verbosity
	}
	return base
}

func (p Profile) validate() error {
	if p.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	switch p.Verbosity {
	case VerbosityConcise, VerbosityDetailed:
	default:
		return fmt.Errorf("unknown verbosity %q", p.Verbosity)
	}
	return nil
}
