package harness

import (
	"fmt"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// scenarioSchema constrains scenario documents before they are decoded.
// The op disjunction is filled from the operation registry.
const scenarioSchema = `
#Op: %s

#Kind: "integer" | "rational" | "irrational" | "unset"

#Expect: {
	kind?:   #Kind
	text?:   string
	approx?: number
	error?:  =~"^[A-Z][A-Z_]*$"
}

#Step: {
	op:      #Op
	args:    [...(string | number)]
	expect?: #Expect
}

#Scenario: {
	name:        =~"^[a-z0-9][a-z0-9_]*$"
	description: string & !=""
	tolerance?:  number & >0
	steps:       [#Step, ...#Step]
}
`

// SchemaError reports a scenario that does not match the schema, with the
// source position when CUE provides one.
type SchemaError struct {
	Message string
	Pos     token.Pos
}

func (e *SchemaError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// schema holds the compiled #Scenario definition.
type schema struct {
	ctx      *cue.Context
	scenario cue.Value
}

func compileSchema() (*schema, error) {
	quoted := make([]string, 0, len(operations))
	for _, name := range Operations() {
		quoted = append(quoted, strconv.Quote(name))
	}

	ctx := cuecontext.New()
	v := ctx.CompileString(fmt.Sprintf(scenarioSchema, strings.Join(quoted, " | ")), cue.Filename("scenario.cue"))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return &schema{ctx: ctx, scenario: v.LookupPath(cue.ParsePath("#Scenario"))}, nil
}

// validateDocument checks a decoded YAML document against #Scenario.
func (s *schema) validateDocument(doc any) error {
	v := s.scenario.Unify(s.ctx.Encode(doc))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}
	return nil
}

// compileDocument compiles a CUE scenario source and unifies it with
// #Scenario. The result is concrete and ready to decode.
func (s *schema) compileDocument(filename string, src []byte) (cue.Value, error) {
	doc := s.ctx.CompileBytes(src, cue.Filename(filename))
	if err := doc.Err(); err != nil {
		return cue.Value{}, formatCUEError(err)
	}
	v := s.scenario.Unify(doc)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return cue.Value{}, formatCUEError(err)
	}
	return v, nil
}

// formatCUEError extracts the first error and its position.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	se := &SchemaError{Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		se.Pos = positions[0]
	}
	return se
}
