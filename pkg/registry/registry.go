// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"time"
)

const DefaultPath = "configs/activity-registry.json"

var errorCodePattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return &reg, nil
}

// New returns an empty registry at version 1.0.0.
func New() *ActivityRegistry {
	return &ActivityRegistry{Version: "1.0.0", Activities: []Activity{}}
}

func (r *ActivityRegistry) Save(path string) error {
	r.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

// Find returns the activity serving taskType.
func (r *ActivityRegistry) Find(taskType string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

func (r *ActivityRegistry) Add(a Activity) error {
	if err := a.Validate(); err != nil {
		return err
	}
	for _, existing := range r.Activities {
		if existing.ID == a.ID {
			return fmt.Errorf("activity with ID %s already exists", a.ID)
		}
		if existing.TaskType == a.TaskType {
			return fmt.Errorf("task type %s is already served by %s", a.TaskType, existing.ID)
		}
	}
	r.Activities = append(r.Activities, a)
	return nil
}

// Update sets one scalar field of an activity.
func (r *ActivityRegistry) Update(id, field, value string) error {
	idx := slices.IndexFunc(r.Activities, func(a Activity) bool { return a.ID == id })
	if idx < 0 {
		return fmt.Errorf("activity with ID %s not found", id)
	}
	a := r.Activities[idx]

	switch field {
	case "status":
		a.ImplementationStatus = value
	case "version":
		a.Version = value
	case "displayName":
		a.DisplayName = value
	case "description":
		a.Description = value
	case "category":
		a.Category = value
	case "timeout":
		a.Timeout = value
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		a.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	if err := a.Validate(); err != nil {
		return err
	}
	r.Activities[idx] = a
	return nil
}

// Validate checks every activity and rejects duplicate IDs or task types.
func (r *ActivityRegistry) Validate() error {
	if len(r.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}

	ids := make(map[string]bool)
	taskTypes := make(map[string]bool)
	for _, a := range r.Activities {
		if err := a.Validate(); err != nil {
			return err
		}
		if ids[a.ID] {
			return fmt.Errorf("duplicate activity ID: %s", a.ID)
		}
		if taskTypes[a.TaskType] {
			return fmt.Errorf("duplicate task type: %s", a.TaskType)
		}
		ids[a.ID] = true
		taskTypes[a.TaskType] = true
	}
	return nil
}

func (a Activity) Validate() error {
	switch {
	case a.ID == "":
		return fmt.Errorf("activity missing required field: id")
	case a.DisplayName == "":
		return fmt.Errorf("activity %s missing required field: displayName", a.ID)
	case a.TaskType == "":
		return fmt.Errorf("activity %s missing required field: taskType", a.ID)
	case !slices.Contains(Categories, a.Category):
		return fmt.Errorf("activity %s has unknown category %q", a.ID, a.Category)
	case a.ImplementationStatus != "" && !slices.Contains(Statuses, a.ImplementationStatus):
		return fmt.Errorf("activity %s has unknown status %q", a.ID, a.ImplementationStatus)
	case a.Retries < 0:
		return fmt.Errorf("activity %s has negative retries", a.ID)
	}

	if a.Timeout != "" {
		if _, err := time.ParseDuration(a.Timeout); err != nil {
			return fmt.Errorf("activity %s has invalid timeout %q", a.ID, a.Timeout)
		}
	}
	for _, code := range a.ErrorCodes {
		if !errorCodePattern.MatchString(code) {
			return fmt.Errorf("activity %s has malformed error code %q", a.ID, code)
		}
	}
	return nil
}
