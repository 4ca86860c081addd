package handlers

import (
	"net/http"

	"antika-pos/services"

	"github.com/gin-gonic/gin"
)

type ReservationRequest struct {
	Customer  *string `json:"customer"`
	Date      *string `json:"date"`
	Time      *string `json:"time"`
	PartySize *int    `json:"party_size"`
	Table     *int    `json:"table"`
	Status    *string `json:"status"`
	Phone     *string `json:"phone"`
}

func (r ReservationRequest) input() services.ReservationInput {
	return services.ReservationInput{
		Customer: r.Customer, Date: r.Date, Time: r.Time, PartySize: r.PartySize,
		Table: r.Table, Status: r.Status, Phone: r.Phone,
	}
}

func (h *Handlers) ListReservations(c *gin.Context) {
	out, err := h.Reservations.List(c.Request.Context(), c.Query("date"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, out, "")
}

func (h *Handlers) GetReservation(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	r, err := h.Reservations.Get(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, r, "")
}

func (h *Handlers) CreateReservation(c *gin.Context) {
	var req ReservationRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.Reservations.Create(c.Request.Context(), req.input())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, r, "reservation created")
}

func (h *Handlers) UpdateReservation(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	var req ReservationRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.Reservations.Update(c.Request.Context(), id, req.input())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, r, "reservation updated")
}

func (h *Handlers) DeleteReservation(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	if err := h.Reservations.Delete(c.Request.Context(), id); err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, nil, "reservation deleted")
}
