// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SourceSpec configures one external data source: which connector kind to
// construct and its constructor parameters.
type SourceSpec struct {
	Connector string                 `json:"connector" validate:"required"`
	Params    map[string]interface{} `json:"params"`
}

// SourceBindings is the source binding configuration, immutable for the
// process lifetime. It maps source names to connector specs, GET attribute
// names to source names, and municipality names (case-insensitive) to source
// names for listing queries.
type SourceBindings struct {
	Sources             map[string]SourceSpec `json:"sources" validate:"required,dive"`
	AttributeBinding    map[string]string     `json:"attribute_binding"`
	MunicipalityBinding map[string]string     `json:"municipality_binding"`
}

// LoadSourceBindings reads and validates the bindings file. Any failure here
// is fatal for the caller, the process cannot serve federated queries with a
// broken binding configuration.
func LoadSourceBindings(path string) (*SourceBindings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source bindings file %q: %w", path, err)
	}

	bindings := new(SourceBindings)
	if err := json.Unmarshal(raw, bindings); err != nil {
		return nil, fmt.Errorf("failed to parse source bindings file %q: %w", path, err)
	}

	if err := validator.New().Struct(bindings); err != nil {
		return nil, fmt.Errorf("invalid source bindings in %q: %w", path, err)
	}

	for attr, source := range bindings.AttributeBinding {
		if _, ok := bindings.Sources[source]; !ok {
			return nil, fmt.Errorf("attribute binding %q references undefined source %q", attr, source)
		}
	}
	for municipality, source := range bindings.MunicipalityBinding {
		if _, ok := bindings.Sources[source]; !ok {
			return nil, fmt.Errorf("municipality binding %q references undefined source %q", municipality, source)
		}
	}

	return bindings, nil
}

// SourceForAttribute returns the source bound to a GET parameter name.
func (b *SourceBindings) SourceForAttribute(name string) (string, bool) {
	source, ok := b.AttributeBinding[name]
	return source, ok
}

// SourceForMunicipality returns the source bound to a municipality name.
// Matching is case-insensitive.
func (b *SourceBindings) SourceForMunicipality(name string) (string, bool) {
	for municipality, source := range b.MunicipalityBinding {
		if strings.EqualFold(municipality, name) {
			return source, true
		}
	}
	return "", false
}
