package handlers

import (
	"errors"
	"io"
	"net/http"

	"antika-pos/services"

	"github.com/gin-gonic/gin"
)

type CreateTableRequest struct {
	Number   int     `json:"number" binding:"required,min=1"`
	Capacity int     `json:"capacity"`
	Staff    *string `json:"staff"`
}

type UpdateTableRequest struct {
	Status     *string `json:"status"`
	Staff      *string `json:"staff"`
	Capacity   *int    `json:"capacity"`
	ClearStaff bool    `json:"clear_staff"`
}

type StaffRequest struct {
	Staff string `json:"staff" binding:"required"`
}

type ReserveRequest struct {
	Name string `json:"name" binding:"required"`
}

type AddItemsRequest struct {
	Items []struct {
		Name     string  `json:"name" binding:"required"`
		Price    float64 `json:"price"`
		Quantity int     `json:"quantity"`
		Note     string  `json:"note"`
	} `json:"items" binding:"required,min=1,dive"`
	Staff string `json:"staff"`
}

type RemoveItemRequest struct {
	ItemID string `json:"itemId" binding:"required"`
}

type QuantityRequest struct {
	ItemID   string `json:"itemId" binding:"required"`
	Quantity *int   `json:"quantity" binding:"required"`
}

type ItemStatusRequest struct {
	ItemID string `json:"itemId" binding:"required"`
	Status string `json:"status" binding:"required"`
}

type CloseTableRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

// ListTables returns the seating plan, optionally filtered by ?status=
func (h *Handlers) ListTables(c *gin.Context) {
	tables, err := h.Tables.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, tables, "")
}

func (h *Handlers) GetTable(c *gin.Context) {
	n, valid := intParam(c, "id")
	if !valid {
		return
	}
	t, err := h.Tables.Get(c.Request.Context(), n)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, t, "")
}

func (h *Handlers) TableStats(c *gin.Context) {
	stats, err := h.Tables.Stats(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, stats, "")
}

func (h *Handlers) CreateTable(c *gin.Context) {
	var req CreateTableRequest
	if !bindJSON(c, &req) {
		return
	}
	t, err := h.Tables.Create(c.Request.Context(), services.CreateTableInput{
		Number: req.Number, Capacity: req.Capacity, Staff: req.Staff,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, t, "table created")
}

func (h *Handlers) UpdateTable(c *gin.Context) {
	n, valid := intParam(c, "id")
	if !valid {
		return
	}
	var req UpdateTableRequest
	if !bindJSON(c, &req) {
		return
	}
	t, err := h.Tables.Update(c.Request.Context(), n, services.UpdateTableInput{
		Status: req.Status, Staff: req.Staff, Capacity: req.Capacity, ClearStaff: req.ClearStaff,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, t, "table updated")
}

func (h *Handlers) DeleteTable(c *gin.Context) {
	n, valid := intParam(c, "id")
	if !valid {
		return
	}
	if err := h.Tables.Delete(c.Request.Context(), n); err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, nil, "table deleted")
}

// OpenTable assigns a waiter to a free table
func (h *Handlers) OpenTable(c *gin.Context) {
	n, valid := intParam(c, "tableId")
	if !valid {
		return
	}
	var req StaffRequest
	if !bindJSON(c, &req) {
		return
	}
	t, err := h.Orders.OpenTable(c.Request.Context(), n, req.Staff)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, t, "table opened")
}

func (h *Handlers) AssignStaff(c *gin.Context) {
	n, valid := intParam(c, "tableId")
	if !valid {
		return
	}
	var req StaffRequest
	if !bindJSON(c, &req) {
		return
	}
	t, err := h.Orders.AssignStaff(c.Request.Context(), n, req.Staff)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, t, "staff assigned")
}

func (h *Handlers) ReserveTable(c *gin.Context) {
	n, valid := intParam(c, "tableId")
	if !valid {
		return
	}
	var req ReserveRequest
	if !bindJSON(c, &req) {
		return
	}
	t, err := h.Orders.ReserveTable(c.Request.Context(), n, req.Name)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, t, "table reserved")
}

func (h *Handlers) AddItems(c *gin.Context) {
	n, valid := intParam(c, "tableId")
	if !valid {
		return
	}
	var req AddItemsRequest
	if !bindJSON(c, &req) {
		return
	}
	items := make([]services.NewItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = services.NewItem{Name: it.Name, Price: it.Price, Quantity: it.Quantity, Note: it.Note}
	}
	order, err := h.Orders.AddItems(c.Request.Context(), n, items, req.Staff)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, order, "items added")
}

func (h *Handlers) RemoveItem(c *gin.Context) {
	var req RemoveItemRequest
	if !bindJSON(c, &req) {
		return
	}
	change, err := h.Orders.RemoveItem(c.Request.Context(), c.Param("orderId"), req.ItemID)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, change, "item removed")
}

func (h *Handlers) ChangeQuantity(c *gin.Context) {
	var req QuantityRequest
	if !bindJSON(c, &req) {
		return
	}
	change, err := h.Orders.ChangeQuantity(c.Request.Context(), c.Param("orderId"), req.ItemID, *req.Quantity)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, change, "quantity updated")
}

func (h *Handlers) ChangeItemStatus(c *gin.Context) {
	var req ItemStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	change, err := h.Orders.ChangeItemStatus(c.Request.Context(), c.Param("orderId"), req.ItemID, req.Status)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, change, "item status updated")
}

// CloseTable settles the table's order and frees it. The body is optional.
func (h *Handlers) CloseTable(c *gin.Context) {
	n, valid := intParam(c, "tableId")
	if !valid {
		return
	}
	var req CloseTableRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.Orders.CloseTable(c.Request.Context(), n, req.PaymentMethod)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, result, "table closed")
}
