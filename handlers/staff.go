package handlers

import (
	"net/http"

	"antika-pos/services"

	"github.com/gin-gonic/gin"
)

type EmployeeRequest struct {
	Name     *string  `json:"name"`
	Role     *string  `json:"role"`
	Shift    *string  `json:"shift"`
	Salary   *float64 `json:"salary"`
	Status   *string  `json:"status"`
	CheckIn  *string  `json:"check_in"`
	CheckOut *string  `json:"check_out"`
}

func (r EmployeeRequest) input() services.EmployeeInput {
	return services.EmployeeInput{
		Name: r.Name, Role: r.Role, Shift: r.Shift, Salary: r.Salary,
		Status: r.Status, CheckIn: r.CheckIn, CheckOut: r.CheckOut,
	}
}

type AttendanceRequest struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	Kind       string `json:"kind" binding:"required"`
	Time       string `json:"time"`
}

func (h *Handlers) ListEmployees(c *gin.Context) {
	staff, err := h.Staff.List(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, staff, "")
}

func (h *Handlers) GetEmployee(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	e, err := h.Staff.Get(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, e, "")
}

func (h *Handlers) CreateEmployee(c *gin.Context) {
	var req EmployeeRequest
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.Staff.Create(c.Request.Context(), req.input())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, e, "employee created")
}

func (h *Handlers) UpdateEmployee(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	var req EmployeeRequest
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.Staff.Update(c.Request.Context(), id, req.input())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, e, "employee updated")
}

func (h *Handlers) DeleteEmployee(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	if err := h.Staff.Delete(c.Request.Context(), id); err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, nil, "employee deleted")
}

// ListAttendance returns the clock records of ?date= (default today)
func (h *Handlers) ListAttendance(c *gin.Context) {
	records, err := h.Staff.Attendance(c.Request.Context(), c.Query("date"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, records, "")
}

func (h *Handlers) RecordAttendance(c *gin.Context) {
	var req AttendanceRequest
	if !bindJSON(c, &req) {
		return
	}
	rec, err := h.Staff.RecordAttendance(c.Request.Context(), services.AttendanceInput{
		EmployeeID: req.EmployeeID, Kind: req.Kind, Time: req.Time,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, rec, "attendance recorded")
}

func (h *Handlers) AttendanceSummary(c *gin.Context) {
	sum, err := h.Staff.AttendanceSummary(c.Request.Context(), c.Query("date"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, sum, "")
}
