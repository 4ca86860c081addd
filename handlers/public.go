package handlers

import (
	"net/http"
	"time"

	"antika-pos/models"
	"antika-pos/statemachine"

	"github.com/gin-gonic/gin"
)

// Health reports liveness
func (h *Handlers) Health(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Antika POS API",
		"time":    time.Now().Format(time.RFC3339),
	}, "")
}

// StateMachine documents the table and item lifecycles
func (h *Handlers) StateMachine(c *gin.Context) {
	terminal := []models.ItemStatus{}
	for _, st := range models.ItemStatuses {
		if statemachine.IsTerminal(st) {
			terminal = append(terminal, st)
		}
	}
	ok(c, http.StatusOK, gin.H{
		"item_transitions":      statemachine.GetAllTransitions(),
		"item_terminal_states":  terminal,
		"item_mutable_states":   []models.ItemStatus{models.ItemPending},
		"table_states":          models.TableStatuses,
		"order_states":          models.OrderStatuses,
		"legacy_order_statuses": models.LegacyOrderStatuses(),
	}, "")
}
