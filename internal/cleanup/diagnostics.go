package cleanup

// DiagCode identifies a soft-degradation condition reported by a stage.
type DiagCode string

const (
	// DiagGroupTooLarge means a parallel group exceeded the member cap and
	// was passed through unmerged.
	DiagGroupTooLarge DiagCode = "group_too_large"
	// DiagTooManyComparisons means the pairwise distance check budget was
	// exhausted and the group was passed through unmerged.
	DiagTooManyComparisons DiagCode = "too_many_comparisons"
)

// Diagnostic records a degrade condition from one stage. The engine never
// prints or aborts; callers inspect the list and decide what to surface.
type Diagnostic struct {
	Stage   string   `json:"stage"`
	Code    DiagCode `json:"code"`
	Message string   `json:"message"`
	Count   int      `json:"count,omitempty"`
}
