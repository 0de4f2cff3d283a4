package domain

// AgentStepResult is the explicit result schema for one step of a delegated
// agent task. Every step outcome, including a scalar one, is represented as
// a value of this type; nothing is serialized by reflection.
type AgentStepResult struct {
	Step    int    `json:"step"`
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
	Done    bool   `json:"done"`
}
