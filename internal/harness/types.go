package harness

// TraceEvent records one executed step.
type TraceEvent struct {
	Seq   int      `json:"seq"`
	Op    string   `json:"op"`
	Args  []string `json:"args"`
	Kind  string   `json:"kind,omitempty"`  // result variant, for Real-valued ops
	Text  string   `json:"text,omitempty"`  // rendered result
	Error string   `json:"error,omitempty"` // error code, if the op failed
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every expect clause matched.
	Pass bool `json:"pass"`

	// Trace contains every executed step in order.
	// Used for golden comparison.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds an expectation failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a step to the trace.
func (r *Result) AddTrace(event TraceEvent) {
	r.Trace = append(r.Trace, event)
}
