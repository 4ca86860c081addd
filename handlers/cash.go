package handlers

import (
	"net/http"

	"antika-pos/services"

	"github.com/gin-gonic/gin"
)

type CashRequest struct {
	Table   *int    `json:"table"`
	Label   string  `json:"label"`
	OrderID string  `json:"order_id"`
	Staff   string  `json:"staff"`
	Amount  float64 `json:"amount" binding:"required"`
	Method  string  `json:"method" binding:"required"`
}

type CloseRegisterRequest struct {
	Date string `json:"date"`
}

func (h *Handlers) ListCash(c *gin.Context) {
	txns, err := h.Cash.List(c.Request.Context(), c.Query("date"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, txns, "")
}

func (h *Handlers) RegisterCash(c *gin.Context) {
	var req CashRequest
	if !bindJSON(c, &req) {
		return
	}
	txn, err := h.Cash.Register(c.Request.Context(), services.CashInput{
		Table: req.Table, Label: req.Label, OrderID: req.OrderID,
		Staff: req.Staff, Amount: req.Amount, Method: req.Method,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, txn, "transaction registered")
}

func (h *Handlers) CashSummary(c *gin.Context) {
	sum, err := h.Cash.Summary(c.Request.Context(), c.Query("date"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, sum, "")
}

// CloseRegister snapshots the register for the body date, today by default
func (h *Handlers) CloseRegister(c *gin.Context) {
	var req CloseRegisterRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	closing, err := h.Cash.CloseRegister(c.Request.Context(), req.Date)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, closing, "register closed")
}
