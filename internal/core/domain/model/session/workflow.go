package session

import (
	"fmt"

	"reconcile/internal/pkg/errs"
)

// Workflow identifies the capture workflow a session belongs to. Durable
// state is namespaced per workflow, so a dispatch in progress never collides
// with a collection or devolution running on the same terminal.
type Workflow int

const (
	// WorkflowUnknown represents an invalid or undefined workflow.
	WorkflowUnknown Workflow = iota

	// WorkflowDispatch assembles outbound shipments into a dispatch packet.
	WorkflowDispatch

	// WorkflowCollection reconciles shipments collected from clients.
	WorkflowCollection

	// WorkflowDevolution reconciles returned shipments, where the operator
	// may edit the disposition reason per candidate.
	WorkflowDevolution
)

func getWorkflowStrings() map[Workflow]string {
	return map[Workflow]string{
		WorkflowUnknown:    "unknown",
		WorkflowDispatch:   "dispatch",
		WorkflowCollection: "collection",
		WorkflowDevolution: "devolution",
	}
}

// WorkflowFromString parses a workflow name as used in API routes and
// persistence namespacing.
func WorkflowFromString(s string) (Workflow, error) {
	for w, name := range getWorkflowStrings() {
		if name == s && w != WorkflowUnknown {
			return w, nil
		}
	}
	return WorkflowUnknown, errs.NewValueIsInvalidErrorWithCause("workflow",
		fmt.Errorf("%q is not a valid workflow", s))
}

// Validate checks if the Workflow value is valid.
func (w Workflow) Validate() error {
	switch w {
	case WorkflowDispatch, WorkflowCollection, WorkflowDevolution:
		return nil
	case WorkflowUnknown:
	}
	return errs.NewValueIsInvalidErrorWithCause("workflow",
		fmt.Errorf("%d is not a valid workflow", w))
}

// String returns the lowercase workflow name used in routes and storage keys.
func (w Workflow) String() string {
	if str, ok := getWorkflowStrings()[w]; ok {
		return str
	}
	return "unknown"
}
