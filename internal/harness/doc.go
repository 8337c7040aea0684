// Package harness runs conformance scenarios against the realnum package.
//
// A scenario applies Real operations in sequence, records every outcome in a
// trace, and checks optional expectations on each step. Traces are compared
// against golden snapshots so that any change in promotion, rendering or
// error reporting shows up as a diff.
//
// # Scenario Format
//
// Scenarios are YAML (or CUE) documents:
//
//	name: promotion
//	description: "Mixed-variant arithmetic promotes to the wider variant"
//	steps:
//	  - op: add
//	    args: ["1", "1/2"]
//	    expect:
//	      kind: rational
//	      text: "3/2"
//	  - op: mul
//	    args: ["$1", "2"]
//	    expect:
//	      text: "3"
//	  - op: sqrt
//	    args: ["-4"]
//	    expect:
//	      error: NEGATIVE_EVEN_ROOT
//
// Arguments are Real literals as accepted by realnum.Parse, the word
// "unset", or $N to reuse the result of step N. A failed step yields an
// Unset result.
//
// Documents are validated against a CUE schema before they are decoded, and
// decoding rejects unknown fields.
//
// # Expectations
//
//   - kind: result variant (integer, rational, irrational, unset)
//   - text: rendered result; predicates render true/false, compare renders -1/0/1
//   - approx: numeric value within the scenario tolerance
//   - error: error code; the step must fail with it
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/promotion.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
