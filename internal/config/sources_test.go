// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeBindingsFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sources.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write bindings file: %v", err)
	}
	return path
}

func TestLoadSourceBindings(t *testing.T) {
	tests := []struct {
		name    string
		content string

		expectedError bool
	}{
		{
			name: "Valid bindings",
			content: `{
				"sources": {
					"dreamschool": {"connector": "rest", "params": {"api_url": "https://api.example.invalid/"}},
					"wilma": {"connector": "signed-rest", "params": {"hostname": "wilma.example.invalid"}}
				},
				"attribute_binding": {"dreamschool": "dreamschool"},
				"municipality_binding": {"City": "dreamschool"}
			}`,
		},
		{
			name:          "Invalid JSON",
			content:       `{`,
			expectedError: true,
		},
		{
			name: "Source without a connector kind",
			content: `{
				"sources": {"dreamschool": {"params": {}}}
			}`,
			expectedError: true,
		},
		{
			name: "Attribute binding to an undefined source",
			content: `{
				"sources": {"dreamschool": {"connector": "rest"}},
				"attribute_binding": {"facebook": "nope"}
			}`,
			expectedError: true,
		},
		{
			name: "Municipality binding to an undefined source",
			content: `{
				"sources": {"dreamschool": {"connector": "rest"}},
				"municipality_binding": {"City": "nope"}
			}`,
			expectedError: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := writeBindingsFile(t, test.content)

			bindings, err := LoadSourceBindings(path)

			if test.expectedError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(bindings.Sources) == 0 {
				t.Fatal("expected sources to be loaded")
			}
		})
	}
}

func TestLoadSourceBindingsMissingFile(t *testing.T) {
	if _, err := LoadSourceBindings(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestSourceForMunicipalityCaseInsensitive(t *testing.T) {
	bindings := &SourceBindings{
		Sources:             map[string]SourceSpec{"dreamschool": {Connector: "rest"}},
		MunicipalityBinding: map[string]string{"City": "dreamschool"},
	}

	for _, name := range []string{"City", "city", "CITY"} {
		source, ok := bindings.SourceForMunicipality(name)
		if !ok || source != "dreamschool" {
			t.Fatalf("expected %q to resolve to dreamschool, got %q (%v)", name, source, ok)
		}
	}

	if _, ok := bindings.SourceForMunicipality("Elsewhere"); ok {
		t.Fatal("expected unbound municipality to not resolve")
	}
}
