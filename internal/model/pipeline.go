package model

// StepStatus represents the terminal (or in-flight) state of a pipeline step.
type StepStatus string

const (
	StepPending StepStatus = "pending"
	StepRunning StepStatus = "running"
	StepSuccess StepStatus = "success"
	StepError   StepStatus = "error"
	StepSkipped StepStatus = "skipped"
)

// PipelineStep records the outcome of one step of the approval pipeline.
type PipelineStep struct {
	Name   string     `json:"name"`
	Status StepStatus `json:"status"`
	Detail string     `json:"detail,omitempty"`
}

// PipelineResult is the full outcome of an approval pipeline run. Success
// holds only when every step finished success or skipped.
type PipelineResult struct {
	Success   bool           `json:"success"`
	MatterID  int64          `json:"matter_id,omitempty"`
	MatterURL string         `json:"matter_url,omitempty"`
	Steps     []PipelineStep `json:"steps"`
}

// AllStepsOK reports whether no step terminated in error.
func (r *PipelineResult) AllStepsOK() bool {
	for _, s := range r.Steps {
		if s.Status != StepSuccess && s.Status != StepSkipped {
			return false
		}
	}
	return true
}
