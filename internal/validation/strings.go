package validation

import "fmt"

// Violation describes a single rejected field. Violations accumulate; the
// validators never stop at the first one.
type Violation string

// NotNull records a violation when a required field is empty.
func NotNull(violations []Violation, value, field string) []Violation {
	if value == "" {
		return append(violations, Violation(fmt.Sprintf("required field %q is empty", field)))
	}
	return violations
}

// MinMax records a violation when a field's length falls outside [min, max].
// Empty values are left to NotNull so optional fields stay optional.
func MinMax(violations []Violation, value string, min, max int, field string) []Violation {
	if value == "" {
		return violations
	}
	if len(value) < min {
		violations = append(violations, Violation(fmt.Sprintf("field %q shorter than %d characters", field, min)))
	}
	if len(value) > max {
		violations = append(violations, Violation(fmt.Sprintf("field %q longer than %d characters", field, max)))
	}
	return violations
}

// Email applies the email length bound. Format checking is deliberately
// absent: several independent consumers share the uniqueness contract with
// the account service, and tightening the format is a cross-team decision.
func Email(violations []Violation, email string) []Violation {
	return MinMax(violations, email, 0, maxEmailLength, "Email")
}
