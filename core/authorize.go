package core

// DecisionKind classifies the outcome of an authorization check.
type DecisionKind int

const (
	// Allowed means every operation passed both the scope and authorship checks.
	Allowed DecisionKind = iota

	// ScopeDenied means at least one operation name is outside the granted scope.
	ScopeDenied

	// AuthorDenied means at least one operation acts for an account other than
	// the credential subject.
	AuthorDenied
)

// Decision is the result of authorizing a batch. ViolatingScopes lists the
// out-of-scope operation names in first-observed batch order, deduplicated.
type Decision struct {
	Kind            DecisionKind
	ViolatingScopes []string
}

// Authorize validates every operation of the batch against the granted scope
// and the acting user. All operations are evaluated so the decision carries the
// complete set of scope violations; authorship is tracked as a single verdict
// for the whole batch. When both checks fail the scope violation is reported.
// Scope is taken by value, so the whole batch sees one snapshot of the grant.
func Authorize(grantedScope []string, operations []Operation, actingUser string) Decision {
	granted := make(map[string]struct{}, len(grantedScope))
	for _, name := range grantedScope {
		granted[name] = struct{}{}
	}

	var violating []string
	seen := make(map[string]struct{})
	authorOK := true

	for _, op := range operations {
		if _, ok := granted[op.Name]; !ok {
			if _, dup := seen[op.Name]; !dup {
				seen[op.Name] = struct{}{}
				violating = append(violating, op.Name)
			}
		}
		if !IsAuthor(op.Name, op.Body, actingUser) {
			authorOK = false
		}
	}

	if len(violating) > 0 {
		return Decision{Kind: ScopeDenied, ViolatingScopes: violating}
	}
	if !authorOK {
		return Decision{Kind: AuthorDenied}
	}
	return Decision{Kind: Allowed}
}
