// Package meta parses run metadata from flags, files, and environment
// variables and merges the sources with a fixed precedence. The merged value
// is attached to results and webhook payloads so CI systems can correlate
// runs.
package meta

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is the environment namespace for run metadata: HUSK_META holds a
// JSON object, HUSK_META_* variables hold individual keys.
const EnvPrefix = "HUSK_META"

// ParseKV parses a key=value pair, attempting type inference for the value
func ParseKV(kvPair string) (string, any, error) {
	parts := strings.SplitN(kvPair, "=", 2)
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("invalid format, expected key=value: %s", kvPair)
	}

	key := strings.TrimSpace(parts[0])
	if key == "" {
		return "", nil, fmt.Errorf("empty key in key=value pair")
	}

	valueStr := strings.TrimSpace(parts[1])

	// Try integer first so "1" stays numeric instead of becoming boolean true
	if intVal, err := strconv.Atoi(valueStr); err == nil {
		return key, intVal, nil
	}

	if floatVal, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return key, floatVal, nil
	}

	// Only the explicit literals count as booleans
	if valueStr == "true" || valueStr == "false" {
		boolVal, _ := strconv.ParseBool(valueStr)
		return key, boolVal, nil
	}

	return key, valueStr, nil
}

// ParseJSON parses a JSON string into a map or other structure
func ParseJSON(jsonStr string) (any, error) {
	var result any
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return result, nil
}

// ParseFile reads and parses JSON from a file
func ParseFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata file: %w", err)
	}

	var result any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("invalid JSON in file: %w", err)
	}
	return result, nil
}

// ParseEnv collects environment variables under the given prefix: the bare
// PREFIX variable may hold a JSON object, PREFIX_* variables hold single
// keys (lowercased) with type inference applied to their values.
func ParseEnv(prefix string) map[string]any {
	collected := make(map[string]any)

	if jsonStr := os.Getenv(prefix); jsonStr != "" {
		if parsed, err := ParseJSON(jsonStr); err == nil {
			if m, ok := parsed.(map[string]any); ok {
				maps.Copy(collected, m)
			}
		}
	}

	envPrefix := prefix + "_"
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(parts[0], envPrefix))
		_, value, _ := ParseKV(key + "=" + parts[1])
		collected[key] = value
	}

	if len(collected) == 0 {
		return nil
	}
	return collected
}

// Merge merges multiple metadata sources; later sources override earlier
// ones. A single non-map source is passed through unchanged so a JSON array
// or scalar can serve as the whole metadata value.
func Merge(sources ...any) any {
	result := make(map[string]any)

	for _, src := range sources {
		if src == nil {
			continue
		}

		switch v := src.(type) {
		case map[string]any:
			maps.Copy(result, v)
		default:
			if len(result) == 0 {
				return v
			}
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

// Build assembles metadata from all sources under the default HUSK_META
// environment prefix.
func Build(jsonStr string, kvPairs []string, filePath string) (any, error) {
	return BuildWithPrefix(EnvPrefix, jsonStr, kvPairs, filePath)
}

// BuildWithPrefix assembles metadata from all sources. Precedence from
// lowest to highest: environment, file, JSON string, key=value pairs.
func BuildWithPrefix(envPrefix, jsonStr string, kvPairs []string, filePath string) (any, error) {
	var sources []any

	if envData := ParseEnv(envPrefix); envData != nil {
		sources = append(sources, envData)
	}

	if filePath != "" {
		fileData, err := ParseFile(filePath)
		if err != nil {
			return nil, err
		}
		sources = append(sources, fileData)
	}

	if jsonStr != "" {
		jsonData, err := ParseJSON(jsonStr)
		if err != nil {
			return nil, err
		}
		sources = append(sources, jsonData)
	}

	if len(kvPairs) > 0 {
		kvData := make(map[string]any)
		for _, kv := range kvPairs {
			key, value, err := ParseKV(kv)
			if err != nil {
				return nil, err
			}
			kvData[key] = value
		}
		sources = append(sources, kvData)
	}

	return Merge(sources...), nil
}

// BuildMap is BuildWithPrefix for callers that need an object, such as
// provider configuration. A non-object result is an error; no sources at all
// yield an empty map.
func BuildMap(envPrefix, jsonStr string, kvPairs []string, filePath string) (map[string]any, error) {
	result, err := BuildWithPrefix(envPrefix, jsonStr, kvPairs, filePath)
	if err != nil {
		return nil, err
	}

	if result == nil {
		return make(map[string]any), nil
	}
	if m, ok := result.(map[string]any); ok {
		return m, nil
	}
	return nil, fmt.Errorf("configuration must be a JSON object")
}
