package domain

// Decision values a tracked posting can carry. Empty means "not looked at".
const (
	DecisionNew        = "NEW"
	DecisionOverSenior = "OVERSENIOR"
	DecisionSaved      = "SAVED"
	DecisionApplied    = "APPLIED"
	DecisionNotAFit    = "SKIPPED_NOT_A_FIT"
	DecisionRejected   = "REJECTED"
	DecisionArchived   = "ARCHIVED"
)

// Decisions returns the allowed vocabulary, in dropdown order.
func Decisions() []string {
	return []string{
		DecisionNew,
		DecisionOverSenior,
		DecisionSaved,
		DecisionApplied,
		DecisionNotAFit,
		DecisionRejected,
		DecisionArchived,
	}
}

// Unset reports whether a decision cell still counts as "nobody decided yet".
// OVERSENIOR marking may only overwrite these.
func Unset(decision string) bool {
	return decision == "" || decision == DecisionNew
}
