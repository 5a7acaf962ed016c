package core

// NonFieldKey carries errors that do not belong to a single field,
// e.g. a scheduling conflict. The key matches what the existing
// frontend already consumes.
const NonFieldKey = "__all__"

// ValidationErrors maps a field name to its violation message. All
// applicable violations are reported at once, not just the first.
type ValidationErrors map[string]string

func (v ValidationErrors) Add(field, message string) {
	if _, exists := v[field]; !exists {
		v[field] = message
	}
}

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}
