// Package models defines data structures exchanged with the importer service.
package models

// TaskRequest describes a single create-task submission.
type TaskRequest struct {
	Provider           string
	Mode               string
	FilePath           string
	IgnoreMissingRules bool
}

// Task statuses reported by the importer service.
const (
	TaskStatusRunning   = "RUNNING"
	TaskStatusSucceeded = "SUCCEEDED"
	TaskStatusFailed    = "FAILED"
)

// ImportTask represents an importer task as returned by the API.
type ImportTask struct {
	ID                 string `json:"id"`
	Provider           string `json:"provider"`
	Mode               string `json:"mode"`
	Status             string `json:"status"`
	OriginalFilename   string `json:"original_filename"`
	IgnoreMissingRules bool   `json:"ignore_missing_rules"`
	EntriesCount       int    `json:"entries_count"`
	CreatedCount       int    `json:"created_count"`
	UpdatedCount       int    `json:"updated_count"`
	DeletedCount       int    `json:"deleted_count"`
	ErrorCount         int    `json:"error_count"`
	StartDate          string `json:"start_date"`
	EndDate            string `json:"end_date,omitempty"`
	ErrorMessage       string `json:"error_message,omitempty"`
}

// IsFinished reports whether the task reached a terminal status.
func (t *ImportTask) IsFinished() bool {
	return t.Status == TaskStatusSucceeded || t.Status == TaskStatusFailed
}

// Option is a label/value pair for the provider and mode selectors.
// Option lists are configuration supplied to the form, not owned by it.
type Option struct {
	Value string
	Label string
}
