// Package schema models the subset of a LinkML-style schema that refscan
// needs in order to reason about inter-document references: class hierarchy,
// slot ranges (including any_of unions), collection-bearing slots of the
// root Database class, and class-name/type-URI translation.
package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DatabaseClassName is the name of the root class whose slots describe the
// database's top-level collections.
const DatabaseClassName = "Database"

// Definition is the raw, as-authored schema document.
type Definition struct {
	Name          string                     `yaml:"name"`
	ID            string                     `yaml:"id"`
	Version       string                     `yaml:"version"`
	DefaultPrefix string                     `yaml:"default_prefix"`
	Classes       map[string]ClassDefinition `yaml:"classes"`
	Slots         map[string]SlotDefinition  `yaml:"slots"`
	Types         map[string]TypeDefinition  `yaml:"types"`
}

// ClassDefinition describes one schema class.
type ClassDefinition struct {
	ClassURI string   `yaml:"class_uri"`
	IsA      string   `yaml:"is_a"`
	Abstract bool     `yaml:"abstract"`
	Slots    []string `yaml:"slots"`
}

// SlotDefinition describes one schema slot. A slot's range may be a class
// name, a scalar type name, or a disjunction of ranges via AnyOf.
type SlotDefinition struct {
	Range         string            `yaml:"range"`
	Multivalued   bool              `yaml:"multivalued"`
	InlinedAsList bool              `yaml:"inlined_as_list"`
	AnyOf         []RangeExpression `yaml:"any_of"`
}

// RangeExpression is one disjunct of a slot's any_of constraint.
type RangeExpression struct {
	Range string `yaml:"range"`
}

// TypeDefinition describes a scalar type declared by the schema. Only its
// presence matters to refscan; scalar-ranged slots are never references.
type TypeDefinition struct {
	URI  string `yaml:"uri"`
	Base string `yaml:"base"`
}

// Parse decodes a schema definition from YAML bytes.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing schema YAML: %w", err)
	}
	if len(def.Classes) == 0 {
		return nil, fmt.Errorf("schema defines no classes")
	}
	return &def, nil
}

// LoadFile reads and decodes a schema definition from a YAML file.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}
	return Parse(data)
}
