package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/stamp/pkg/stamp"
)

// PackageConfig is the project.package section of cumulusci.yml.
// Pointers distinguish an absent or null key from an empty string.
type PackageConfig struct {
	Name        *string `yaml:"name"`
	NameManaged *string `yaml:"name_managed"`
}

type ProjectSection struct {
	Package PackageConfig `yaml:"package"`
}

// CumulusConfig holds the parts of cumulusci.yml that stamp reads.
// Every other key in the file is ignored.
type CumulusConfig struct {
	Project ProjectSection `yaml:"project"`
}

// ReadFileFunc reads a whole file, like os.ReadFile.
type ReadFileFunc func(path string) ([]byte, error)

// Load reads and decodes the configuration file at path.
func Load(path string) (*CumulusConfig, error) {
	return LoadWith(os.ReadFile, path)
}

// LoadWith is Load with a custom file reader. Reader errors wrapping
// fs.ErrNotExist are reported as stamp.ErrConfigNotFound.
func LoadWith(readFile ReadFileFunc, path string) (*CumulusConfig, error) {
	data, err := readFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", stamp.ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg CumulusConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", stamp.ErrConfigParse, path, err)
	}
	return &cfg, nil
}

// Replacements extracts the placeholder values. Both keys must be present.
func (c *CumulusConfig) Replacements() (stamp.Replacements, error) {
	pkg := c.Project.Package
	if pkg.Name == nil {
		return stamp.Replacements{}, fmt.Errorf("%w: %s", stamp.ErrConfigMissingField, stamp.ConfigKeyName)
	}
	if pkg.NameManaged == nil {
		return stamp.Replacements{}, fmt.Errorf("%w: %s", stamp.ErrConfigMissingField, stamp.ConfigKeyLabel)
	}
	return stamp.Replacements{
		Name:  *pkg.Name,
		Label: *pkg.NameManaged,
	}, nil
}

// LoadReplacements loads the configuration file at path and extracts the
// placeholder values from it.
func LoadReplacements(path string) (stamp.Replacements, error) {
	return LoadReplacementsWith(os.ReadFile, path)
}

// LoadReplacementsWith is LoadReplacements with a custom file reader.
func LoadReplacementsWith(readFile ReadFileFunc, path string) (stamp.Replacements, error) {
	cfg, err := LoadWith(readFile, path)
	if err != nil {
		return stamp.Replacements{}, err
	}
	return cfg.Replacements()
}
