// Package prompts holds the static context tables that drive personalization:
// buyer goals, personas, industry angles, case studies, fallback copy pools,
// and the system/fix prompt templates themselves. Each table is a flat JSON
// object of string keys, embedded at compile time so a deployed binary never
// depends on files on disk.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var tableFS embed.FS

// Parsed tables are kept around after first use; the files never change at
// runtime.
var (
	tables   = make(map[string]map[string]string)
	tablesMu sync.RWMutex
)

// Get looks up one entry in a table, e.g. Get("goals.json", "evaluating").
// Filenames are bare, no path.
func Get(filename, key string) (string, error) {
	entries, err := table(filename)
	if err != nil {
		return "", err
	}

	value, exists := entries[key]
	if !exists {
		return "", fmt.Errorf("key %q not found in %s", key, filename)
	}

	return value, nil
}

// MustGet is Get for entries the program cannot run without, such as the
// system prompt templates. A missing entry is a packaging bug, so it panics.
func MustGet(filename, key string) string {
	value, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("prompts: %v", err))
	}
	return value
}

// Format substitutes {{.Key}} placeholders in a template with values from
// data. Deliberately not text/template: prompt text is full of braces and
// percent signs that must pass through untouched.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, "{{."+key+"}}", value)
	}
	return result
}

// table returns the parsed entries for one embedded file, parsing it at most
// once.
func table(filename string) (map[string]string, error) {
	tablesMu.RLock()
	entries, exists := tables[filename]
	tablesMu.RUnlock()
	if exists {
		return entries, nil
	}

	data, err := tableFS.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", filename, err)
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse table %s: %w", filename, err)
	}

	tablesMu.Lock()
	tables[filename] = entries
	tablesMu.Unlock()

	return entries, nil
}

// ClearCache drops all parsed tables. Only tests need this.
func ClearCache() {
	tablesMu.Lock()
	tables = make(map[string]map[string]string)
	tablesMu.Unlock()
}

// List returns every key in a table, in no particular order.
func List(filename string) ([]string, error) {
	entries, err := table(filename)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	return keys, nil
}
