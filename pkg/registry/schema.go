// pkg/registry/schema.go
package registry

// ActivityRegistry documents every BPMN service task the worker manager can serve.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

type Activity struct {
	ID                   string                 `json:"id"`
	DisplayName          string                 `json:"displayName"`
	Description          string                 `json:"description"`
	Category             string                 `json:"category"`
	Version              string                 `json:"version"`
	TaskType             string                 `json:"taskType"`
	ImplementationStatus string                 `json:"implementationStatus"`
	InputSchema          map[string]interface{} `json:"inputSchema,omitempty"`
	OutputSchema         map[string]interface{} `json:"outputSchema,omitempty"`
	ErrorCodes           []string               `json:"errorCodes"`
	Timeout              string                 `json:"timeout"`
	Retries              int                    `json:"retries"`
	Workflows            []string               `json:"workflows,omitempty"`
	Tags                 []string               `json:"tags,omitempty"`
}

// Categories group activities by the service layer that implements them.
var Categories = []string{"legal", "matching", "advisory", "consultation"}

var Statuses = []string{"planned", "in-progress", "completed", "verified"}
