package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) ReportSummary(c *gin.Context) {
	sum, err := h.Reports.Summary(c.Request.Context(), c.DefaultQuery("period", "today"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, sum, "")
}

func (h *Handlers) DailyIncome(c *gin.Context) {
	days, valid := intQuery(c, "days", 7)
	if !valid {
		return
	}
	rows, err := h.Reports.DailyIncome(c.Request.Context(), days)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, rows, "")
}

func (h *Handlers) TopDishes(c *gin.Context) {
	limit, valid := intQuery(c, "limit", 5)
	if !valid {
		return
	}
	rows, err := h.Reports.TopDishes(c.Request.Context(), limit)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, rows, "")
}

func (h *Handlers) Dashboard(c *gin.Context) {
	d, err := h.Reports.Dashboard(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, d, "")
}
