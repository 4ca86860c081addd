package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handlers) ListOrders(c *gin.Context) {
	orders, err := h.Orders.ListOrders(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, orders, "")
}

func (h *Handlers) GetOrder(c *gin.Context) {
	order, err := h.Orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, order, "")
}

// DeleteOrder is the admin override that drops an order outright
func (h *Handlers) DeleteOrder(c *gin.Context) {
	if err := h.Orders.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, nil, "order deleted")
}

func (h *Handlers) ActiveOrders(c *gin.Context) {
	orders, err := h.Orders.ActiveOrders(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, orders, "")
}

// KitchenQueue lists the lines still to be cooked or served, oldest order first
func (h *Handlers) KitchenQueue(c *gin.Context) {
	items, err := h.Orders.KitchenItems(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, items, "")
}

// TableOrder returns the active order of a table; data is null when there is none
func (h *Handlers) TableOrder(c *gin.Context) {
	n, valid := intParam(c, "tableId")
	if !valid {
		return
	}
	order, err := h.Orders.ActiveOrderForTable(c.Request.Context(), n)
	if err != nil {
		failErr(c, err)
		return
	}
	if order == nil {
		ok(c, http.StatusOK, nil, "no active order")
		return
	}
	ok(c, http.StatusOK, order, "")
}

// SetOrderStatus is the admin override. Legacy status names are accepted.
func (h *Handlers) SetOrderStatus(c *gin.Context) {
	var req OrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.Orders.SetOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, order, "order status updated")
}
