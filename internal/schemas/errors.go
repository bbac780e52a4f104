// internal/schemas/errors.go
package schemas

import (
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"
)

const rootPath = "(root)"

// Violation is a single way in which a document departs from its schema.
type Violation struct {
	Path         string `json:"path"`
	Type         string `json:"type"`
	ExpectedType string `json:"expectedType,omitempty"`
	Reason       string `json:"reason"`
}

// StructuralError reports the first violation of a structural check and carries
// the full list. Violations are ordered by path.
type StructuralError struct {
	Schema       Name
	Path         string
	ExpectedType string
	Reason       string
	Violations   []Violation
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s does not match %s: %s", e.Path, e.Schema, e.Reason)
}

func newStructuralError(name Name, results []gojsonschema.ResultError) *StructuralError {
	violations := make([]Violation, 0, len(results))
	for _, re := range results {
		v := Violation{
			Path:   re.Field(),
			Type:   re.Type(),
			Reason: re.Description(),
		}
		if expected, ok := re.Details()["expected"].(string); ok && re.Type() == "invalid_type" {
			v.ExpectedType = expected
		}
		violations = append(violations, v)
	}
	sort.SliceStable(violations, func(i, j int) bool { return violations[i].Path < violations[j].Path })

	e := &StructuralError{Schema: name, Violations: violations, Path: rootPath}
	if len(violations) > 0 {
		e.Path = violations[0].Path
		e.ExpectedType = violations[0].ExpectedType
		e.Reason = violations[0].Reason
	}
	return e
}
