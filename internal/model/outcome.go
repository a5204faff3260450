package model

// ActionOutcome is the per-row result of the click cascade.
type ActionOutcome string

const (
	// OutcomeClicked: a click strategy fired against the row.
	OutcomeClicked ActionOutcome = "clicked"

	// OutcomeAlreadyActive: the idempotence probe vetoed the click because
	// the control already shows the skipped state.
	OutcomeAlreadyActive ActionOutcome = "already_active"

	// OutcomeUnreliable: the row's geometry was rejected before any
	// strategy ran (off-screen, implausible, or outside the reliable zone).
	OutcomeUnreliable ActionOutcome = "unreliable"

	// OutcomeFailed: every strategy was attempted and none fired.
	OutcomeFailed ActionOutcome = "failed"
)
