package statemachine

import (
	"strings"

	"antika-pos/models"
)

// Transition defines a valid item status change and who normally performs it
type Transition struct {
	From  models.ItemStatus `json:"from"`
	To    models.ItemStatus `json:"to"`
	Actor string            `json:"actor"` // "kitchen", "waiter"
}

// validTransitions is the authoritative item state machine. Delivered and
// voided are terminal.
var validTransitions = []Transition{
	// Kitchen picks the dish up
	{From: models.ItemPending, To: models.ItemPreparing, Actor: "kitchen"},
	{From: models.ItemPending, To: models.ItemVoided, Actor: "waiter"},
	{From: models.ItemPreparing, To: models.ItemReady, Actor: "kitchen"},
	{From: models.ItemPreparing, To: models.ItemVoided, Actor: "kitchen"},
	// Waiter serves it
	{From: models.ItemReady, To: models.ItemDelivered, Actor: "waiter"},
}

type transitionKey struct {
	From models.ItemStatus
	To   models.ItemStatus
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.ItemStatus) []models.ItemStatus {
	var nexts []models.ItemStatus
	seen := map[models.ItemStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition reports whether an item may move from one status to another
func CanTransition(from, to models.ItemStatus) bool {
	return transitionMap[transitionKey{From: from, To: to}]
}

// IsTerminal reports whether no transition leaves status
func IsTerminal(status models.ItemStatus) bool {
	return len(ValidTransitionsFrom(status)) == 0
}

// IsMutable reports whether the item can still be removed or re-quantified.
// Once the kitchen has it, the line is locked.
func IsMutable(status models.ItemStatus) bool {
	return status == models.ItemPending
}

// DescribeValidFrom renders the allowed next states for error messages
func DescribeValidFrom(status models.ItemStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
