package handlers

import (
	"errors"
	"net/http"

	"antika-pos/services"

	"github.com/gin-gonic/gin"
)

type UserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Phone    *string `json:"phone"`
	DNI      *string `json:"dni"`
	Active   *bool   `json:"active"`
}

func (r UserRequest) input() services.UserInput {
	return services.UserInput{
		Name: r.Name, Email: r.Email, Password: r.Password, Role: r.Role,
		Phone: r.Phone, DNI: r.DNI, Active: r.Active,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// Login authenticates a user and returns a JWT
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.Users.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		fail(c, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		failErr(c, err)
		return
	}
	token, err := h.Auth.GenerateToken(user)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to generate token")
		return
	}
	ok(c, http.StatusOK, gin.H{"token": token, "user": user}, "login successful")
}

func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, users, "")
}

func (h *Handlers) GetUser(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	u, err := h.Users.Get(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, u, "")
}

func (h *Handlers) CreateUser(c *gin.Context) {
	var req UserRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Users.Create(c.Request.Context(), req.input())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, u, "user created")
}

func (h *Handlers) UpdateUser(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	var req UserRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Users.Update(c.Request.Context(), id, req.input())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, u, "user updated")
}

func (h *Handlers) ChangeRole(c *gin.Context) {
	var req RoleRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Users.ChangeRole(c.Request.Context(), c.Param("email"), req.Role)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, u, "role updated")
}

func (h *Handlers) DeleteUser(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	if err := h.Users.Delete(c.Request.Context(), id); err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, nil, "user deleted")
}
