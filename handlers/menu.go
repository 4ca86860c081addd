package handlers

import (
	"net/http"

	"antika-pos/services"

	"github.com/gin-gonic/gin"
)

type DishRequest struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Available   *bool    `json:"available"`
}

func (r DishRequest) input() services.DishInput {
	return services.DishInput{
		Name: r.Name, Category: r.Category, Price: r.Price,
		Description: r.Description, Available: r.Available,
	}
}

func (h *Handlers) ListDishes(c *gin.Context) {
	dishes, err := h.Menu.List(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, dishes, "")
}

func (h *Handlers) GetDish(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	d, err := h.Menu.Get(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, d, "")
}

func (h *Handlers) CreateDish(c *gin.Context) {
	var req DishRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := h.Menu.Create(c.Request.Context(), req.input())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, d, "dish created")
}

func (h *Handlers) UpdateDish(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	var req DishRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := h.Menu.Update(c.Request.Context(), id, req.input())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, d, "dish updated")
}

func (h *Handlers) DeleteDish(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	if err := h.Menu.Delete(c.Request.Context(), id); err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, nil, "dish deleted")
}

func (h *Handlers) ToggleDish(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}
	d, err := h.Menu.ToggleAvailability(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, d, "dish availability updated")
}

func (h *Handlers) DishStats(c *gin.Context) {
	stats, err := h.Menu.Stats(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, stats, "")
}

// GetMenu returns available dishes grouped by category
func (h *Handlers) GetMenu(c *gin.Context) {
	menu, err := h.Menu.Menu(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, menu, "")
}

func (h *Handlers) MenuCategories(c *gin.Context) {
	cats, err := h.Menu.Categories(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, cats, "")
}

func (h *Handlers) MenuByCategory(c *gin.Context) {
	dishes, err := h.Menu.ByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, dishes, "")
}

func (h *Handlers) SearchMenu(c *gin.Context) {
	dishes, err := h.Menu.Search(c.Request.Context(), c.Param("term"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, dishes, "")
}
