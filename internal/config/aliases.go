package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AliasFile is the on-disk shape of ALIAS_FILE:
//
//	aliases:
//	  c9: Cloud9
//	  liquid: Team Liquid
type AliasFile struct {
	Aliases map[string]string `yaml:"aliases"`
}

// LoadAliases reads a YAML alias table. An empty path yields an empty table.
func LoadAliases(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alias file: %w", err)
	}

	var f AliasFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse alias file: %w", err)
	}
	if f.Aliases == nil {
		f.Aliases = map[string]string{}
	}
	return f.Aliases, nil
}
