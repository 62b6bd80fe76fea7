package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultLabel = "Default"

var ErrNoConfig = errors.New("no config selected")

// Profile is one yaml file under ConfigsDir. The active one is named by the
// current_config label file.
type Profile struct {
	Label  string
	Path   string
	Active bool
}

// Load reads the profile over the defaults, so fields missing from the file
// keep their default values.
func (p Profile) Load() (*Config, error) {
	b, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("profile %s: %w", p.Label, err)
	}

	return c, nil
}

// Save writes cfg as this profile.
func (p Profile) Save(cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(p.Path), 0755); err != nil {
		return err
	}
	return SaveYAML(cfg, p.Path)
}

// ConfigRoot is $APPDATA/yomikazu, $XDG_CONFIG_HOME/yomikazu or
// ~/.config/yomikazu, in that order.
func ConfigRoot() string {
	for _, env := range []string{"APPDATA", "XDG_CONFIG_HOME"} {
		if dir := os.Getenv(env); dir != "" {
			return filepath.Join(dir, "yomikazu")
		}
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "yomikazu")
}

func ConfigsDir() string {
	return filepath.Join(ConfigRoot(), "configs")
}

func currentLabelFile() string {
	return filepath.Join(ConfigRoot(), "current_config")
}

// LookupProfile returns the profile called label, whether or not it exists on
// disk yet.
func LookupProfile(label string) (Profile, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Profile{}, errors.New("label cannot be empty")
	}
	if strings.ContainsAny(label, `/\`) {
		return Profile{}, fmt.Errorf("label %q must not contain path separators", label)
	}

	active, _ := activeLabel()
	return Profile{
		Label:  label,
		Path:   filepath.Join(ConfigsDir(), label+".yaml"),
		Active: label == active,
	}, nil
}

func (p Profile) exists() bool {
	_, err := os.Stat(p.Path)
	return err == nil
}

func activeLabel() (string, error) {
	b, err := os.ReadFile(currentLabelFile())
	if os.IsNotExist(err) {
		return "", ErrNoConfig
	}
	if err != nil {
		return "", err
	}

	label := strings.TrimSpace(string(b))
	if label == "" {
		return "", ErrNoConfig
	}
	return label, nil
}

// ActiveProfile returns the selected profile. ErrNoConfig when none is
// selected or the selected file has gone.
func ActiveProfile() (Profile, error) {
	label, err := activeLabel()
	if err != nil {
		return Profile{}, err
	}

	p, err := LookupProfile(label)
	if err != nil {
		return Profile{}, err
	}
	if !p.exists() {
		return Profile{}, fmt.Errorf("%w: profile %q is selected but %s is missing", ErrNoConfig, label, p.Path)
	}
	return p, nil
}

// Profiles lists every profile, sorted by label.
func Profiles() ([]Profile, error) {
	entries, err := os.ReadDir(ConfigsDir())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	active, _ := activeLabel()
	var out []Profile
	for _, e := range entries {
		label, ok := strings.CutSuffix(e.Name(), ".yaml")
		if e.IsDir() || !ok {
			continue
		}
		out = append(out, Profile{
			Label:  label,
			Path:   filepath.Join(ConfigsDir(), e.Name()),
			Active: label == active,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

// Activate makes an existing profile the one LoadMerged reads.
func Activate(label string) error {
	p, err := LookupProfile(label)
	if err != nil {
		return err
	}
	if !p.exists() {
		return fmt.Errorf("config %q does not exist", p.Label)
	}

	if err := os.MkdirAll(ConfigRoot(), 0755); err != nil {
		return err
	}
	return os.WriteFile(currentLabelFile(), []byte(p.Label), 0644)
}

// InitDefault writes the Default profile when it is missing and activates it.
// created is false when the file was already there.
func InitDefault() (p Profile, created bool, err error) {
	p, err = LookupProfile(DefaultLabel)
	if err != nil {
		return Profile{}, false, err
	}

	if !p.exists() {
		if err := p.Save(DefaultConfig()); err != nil {
			return Profile{}, false, err
		}
		created = true
	}

	if err := Activate(DefaultLabel); err != nil {
		return Profile{}, false, err
	}
	p.Active = true
	return p, created, nil
}
