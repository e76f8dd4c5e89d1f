package validation

import "context"

// Kind tags a failure so the HTTP status is chosen from the tag instead
// of from the message text.
type Kind int

const (
	BadInput Kind = iota
	NotFound
	Conflict
	ServerError
)

// Failure is one failed pipeline step bound to a request field.
type Failure struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Kind    Kind   `json:"-"`
}

// Step is one named validation or sanitization rule. A nil or empty
// result means continue.
type Step struct {
	Name string
	Run  func(ctx context.Context) []Failure
}

// Pipeline is the ordered rule set for one route. Sanitize always runs
// first (markup stripping happens even for requests that end up
// rejected), every Validate step runs and failures are collected rather
// than short-circuited, and Finalize only runs when validation passed so
// rejected input is never persisted in any form.
type Pipeline struct {
	Sanitize []Step
	Validate []Step
	Finalize []Step
}

// Run executes the pipeline and returns all collected failures.
func (p Pipeline) Run(ctx context.Context) []Failure {
	for _, step := range p.Sanitize {
		step.Run(ctx)
	}

	var failures []Failure
	for _, step := range p.Validate {
		failures = append(failures, step.Run(ctx)...)
	}
	if len(failures) > 0 {
		return failures
	}

	for _, step := range p.Finalize {
		step.Run(ctx)
	}

	return nil
}

// StatusFor maps collected failures to an HTTP status: any server error
// wins, then not found, everything else is a bad request.
func StatusFor(failures []Failure) int {
	status := 400
	for _, failure := range failures {
		switch failure.Kind {
		case ServerError:
			return 500
		case NotFound:
			status = 404
		}
	}
	return status
}
