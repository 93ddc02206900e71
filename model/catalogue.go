package model

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/siherrmann/starcalc/helper"
	"gopkg.in/yaml.v3"
)

//go:embed catalogues.yaml
var defaultCatalogues []byte

// TokenShape describes how a raw identifier is split into lookup parameters
type TokenShape string

const (
	// TokenShapeSingle passes the identifier as one parameter
	TokenShapeSingle TokenShape = "single"
	// TokenShapeComposite splits "<flamsteed> <bayer> <constellation>" into three parameters
	TokenShapeComposite TokenShape = "composite"
)

// CompositeTokens is the number of tokens of a composite identifier
const CompositeTokens = 3

// CatalogueDescriptor describes how identifiers of one catalogue are looked up
type CatalogueDescriptor struct {
	Key               string     `yaml:"-" json:"key"`
	Name              string     `yaml:"name" json:"name"`
	LookupStatement   string     `yaml:"lookup_statement" json:"lookup_statement"`
	ListStatement     string     `yaml:"list_statement" json:"list_statement,omitempty"`
	TokenShape        TokenShape `yaml:"token_shape" json:"token_shape"`
	Numeric           bool       `yaml:"numeric" json:"numeric"`
	PrefixDisplayName bool       `yaml:"prefix_display_name" json:"prefix_display_name"`
}

// Statements are the queries issued by the core itself
type Statements struct {
	// Habitable takes a hipparcos id and returns one row per habitable match
	Habitable string `yaml:"habitable" json:"habitable"`
	// Neighbors takes xmin, xmax, ymin, ymax, zmin, zmax and returns full catalogue rows
	Neighbors string `yaml:"neighbors" json:"neighbors"`
}

// CatalogueConfig is the catalogue configuration consumed by the resolver and the search
type CatalogueConfig struct {
	Statements Statements                      `yaml:"statements" json:"statements"`
	Catalogues map[string]*CatalogueDescriptor `yaml:"catalogues" json:"catalogues"`
}

// DefaultCatalogueConfig returns the embedded catalogue configuration
func DefaultCatalogueConfig() *CatalogueConfig {
	config, err := LoadCatalogueConfig(bytes.NewReader(defaultCatalogues))
	if err != nil {
		panic(fmt.Sprintf("embedded catalogue configuration is invalid: %v", err))
	}
	return config
}

// LoadCatalogueConfigFile reads a catalogue configuration from a YAML file
func LoadCatalogueConfigFile(path string) (*CatalogueConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, helper.NewError("open catalogue configuration", err)
	}
	defer file.Close()

	return LoadCatalogueConfig(file)
}

// LoadCatalogueConfig decodes and validates a YAML catalogue configuration
func LoadCatalogueConfig(r io.Reader) (*CatalogueConfig, error) {
	config := &CatalogueConfig{}
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	err := decoder.Decode(config)
	if err != nil {
		return nil, helper.NewError("decode catalogue configuration", err)
	}

	err = config.Validate()
	if err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that every statement is set and fills in descriptor keys and default shapes
func (c *CatalogueConfig) Validate() error {
	if c.Statements.Habitable == "" {
		return helper.NewError("validate catalogue configuration", fmt.Errorf("statements.habitable is empty"))
	}
	if c.Statements.Neighbors == "" {
		return helper.NewError("validate catalogue configuration", fmt.Errorf("statements.neighbors is empty"))
	}
	if len(c.Catalogues) == 0 {
		return helper.NewError("validate catalogue configuration", fmt.Errorf("no catalogues configured"))
	}

	for key, descriptor := range c.Catalogues {
		if descriptor == nil {
			return helper.NewError("validate catalogue configuration", fmt.Errorf("catalogue %q is empty", key))
		}
		descriptor.Key = key
		if descriptor.LookupStatement == "" {
			return helper.NewError("validate catalogue configuration", fmt.Errorf("catalogue %q has no lookup_statement", key))
		}
		switch descriptor.TokenShape {
		case "":
			descriptor.TokenShape = TokenShapeSingle
		case TokenShapeSingle, TokenShapeComposite:
		default:
			return helper.NewError("validate catalogue configuration", fmt.Errorf("catalogue %q has unknown token_shape %q", key, descriptor.TokenShape))
		}
	}

	return nil
}

// Descriptor returns the descriptor for key
func (c *CatalogueConfig) Descriptor(key string) (*CatalogueDescriptor, bool) {
	descriptor, ok := c.Catalogues[key]
	return descriptor, ok
}

// Keys returns the configured catalogue keys in sorted order
func (c *CatalogueConfig) Keys() []string {
	keys := make([]string, 0, len(c.Catalogues))
	for key := range c.Catalogues {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
