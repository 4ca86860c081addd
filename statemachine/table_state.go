package statemachine

import "antika-pos/models"

// CanOpen reports whether a waiter may open the table. Closed tables are out
// of the normal cycle and behave like free ones.
func CanOpen(status models.TableStatus) bool {
	switch status {
	case models.TableFree, models.TableReserved, models.TableClosed:
		return true
	}
	return false
}

// IsOpen reports whether the table is in service with staff assigned
func IsOpen(status models.TableStatus) bool {
	return status == models.TableOpened || status == models.TableOccupied
}

// CanReserve reports whether the table may be put aside for a reservation
func CanReserve(status models.TableStatus) bool {
	return status != models.TableOccupied
}
