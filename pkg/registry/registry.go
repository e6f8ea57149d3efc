// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"proposal-workers/internal/common/validation"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*ActivityRegistry, error) {
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse registry: %w", err)
	}
	return &reg, nil
}

// Save writes the registry as indented JSON, stamping LastUpdated.
func Save(reg *ActivityRegistry, path string, now time.Time) error {
	reg.LastUpdated = now.UTC().Format(time.RFC3339)
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

// Find returns the activity bound to taskType.
func (r *ActivityRegistry) Find(taskType string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

// InputSchema compiles the registered input schema for taskType. A missing
// activity or an empty schema returns nil so callers fall back to their own.
func (r *ActivityRegistry) InputSchema(taskType string) (*validation.Schema, error) {
	a, ok := r.Find(taskType)
	if !ok || len(a.InputSchema) == 0 {
		return nil, nil
	}
	s, err := validation.Compile(a.InputSchema)
	if err != nil {
		return nil, fmt.Errorf("activity %s: %w", a.ID, err)
	}
	return s, nil
}

// Validate checks the registry on its own and against the task types a
// worker host implements and the error codes it can raise. Every problem is
// returned.
func (r *ActivityRegistry) Validate(taskTypes []string, errorCodes []string) []error {
	var problems []error
	if len(r.Activities) == 0 {
		return []error{fmt.Errorf("registry contains no activities")}
	}

	known := make(map[string]bool, len(errorCodes))
	for _, c := range errorCodes {
		known[c] = true
	}

	ids := make(map[string]bool)
	tasks := make(map[string]bool)
	for _, a := range r.Activities {
		if a.ID == "" {
			problems = append(problems, fmt.Errorf("activity missing required field: ID"))
			continue
		}
		if ids[a.ID] {
			problems = append(problems, fmt.Errorf("duplicate activity ID: %s", a.ID))
		}
		ids[a.ID] = true

		if a.DisplayName == "" {
			problems = append(problems, fmt.Errorf("activity %s missing required field: DisplayName", a.ID))
		}
		if a.Category == "" {
			problems = append(problems, fmt.Errorf("activity %s missing required field: Category", a.ID))
		}
		if a.TaskType == "" {
			problems = append(problems, fmt.Errorf("activity %s missing required field: TaskType", a.ID))
		} else if tasks[a.TaskType] {
			problems = append(problems, fmt.Errorf("duplicate task type: %s", a.TaskType))
		}
		tasks[a.TaskType] = true

		if !knownStatuses[a.ImplementationStatus] {
			problems = append(problems, fmt.Errorf("activity %s has unknown status %q", a.ID, a.ImplementationStatus))
		}
		if a.Timeout != "" {
			if _, err := time.ParseDuration(a.Timeout); err != nil {
				problems = append(problems, fmt.Errorf("activity %s has invalid timeout %q", a.ID, a.Timeout))
			}
		}
		if a.Retries < 0 {
			problems = append(problems, fmt.Errorf("activity %s has negative retries", a.ID))
		}
		for _, code := range a.ErrorCodes {
			if len(known) > 0 && !known[code] {
				problems = append(problems, fmt.Errorf("activity %s declares unknown error code %s", a.ID, code))
			}
		}
		if len(a.InputSchema) > 0 {
			if _, err := validation.Compile(a.InputSchema); err != nil {
				problems = append(problems, fmt.Errorf("activity %s input schema: %w", a.ID, err))
			}
		}
	}

	for _, tt := range taskTypes {
		if !tasks[tt] {
			problems = append(problems, fmt.Errorf("task type %s has a worker but no registry entry", tt))
		}
	}
	return problems
}
