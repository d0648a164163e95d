package config

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// GetValue returns the value stored under key, or an error when the key is
// unset.
func GetValue(cfg *Config, key string) (any, error) {
	if err := ValidateKeyPath(key); err != nil {
		return nil, err
	}
	m, err := ToMap(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	v, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("key %q not set", key)
	}
	return v, nil
}

// SetValue stores rawValue under key in a raw config map. The value is
// coerced to bool, int or float when it parses as one.
func SetValue(data map[string]any, key, rawValue string) error {
	if err := ValidateKeyPath(key); err != nil {
		return err
	}
	data[key] = coerceValue(rawValue)
	return nil
}

// ValidateKeyPath checks that key names a Config field. Every key is a
// scalar, so dotted sub-keys are rejected.
func ValidateKeyPath(key string) error {
	if key == "" {
		return fmt.Errorf("empty key path")
	}

	valid := yamlKeys(reflect.TypeOf(Config{}))
	first, _, nested := strings.Cut(key, ".")

	if first == "api_key" || first == "openai_api_key" {
		return fmt.Errorf("the API key is never stored in %s; set %s in the environment or a .env file", FileName, APIKeyEnv)
	}
	if !valid[first] {
		return fmt.Errorf("unknown key %q; valid keys: %s", first, sortedKeys(valid))
	}
	if nested {
		return fmt.Errorf("key %q is a scalar; cannot use sub-keys", first)
	}
	return nil
}

// ToMap converts a Config to a map keyed by yaml field name. Unset fields
// are omitted.
func ToMap(cfg *Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	m := make(map[string]any)
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// coerceValue parses a string into bool, int, float64, or keeps it as string.
func coerceValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	// "3" stays an int above; only decimals become floats.
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

func yamlKeys(t reflect.Type) map[string]bool {
	keys := make(map[string]bool)
	for i := range t.NumField() {
		tag := t.Field(i).Tag.Get("yaml")
		name, _, _ := strings.Cut(tag, ",")
		if name != "" && name != "-" {
			keys[name] = true
		}
	}
	return keys
}

func sortedKeys(m map[string]bool) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
