package services

import (
	"context"
	"strings"

	"antika-pos/models"

	"gorm.io/gorm"
)

type MenuService struct {
	db *gorm.DB
}

func NewMenuService(db *gorm.DB) *MenuService {
	return &MenuService{db: db}
}

type DishInput struct {
	Name        *string
	Category    *string
	Price       *float64
	Description *string
	Available   *bool
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type MenuStats struct {
	Total       int64 `json:"total"`
	Available   int64 `json:"available"`
	Unavailable int64 `json:"unavailable"`
	Categories  int64 `json:"categories"`
}

// Menu is the available dishes grouped by category
type Menu struct {
	Categories []string                 `json:"categories"`
	Menu       map[string][]models.Dish `json:"menu"`
	Dishes     int                      `json:"total_dishes"`
}

func (s *MenuService) List(ctx context.Context) ([]models.Dish, error) {
	var dishes []models.Dish
	if err := s.db.WithContext(ctx).Order("id").Find(&dishes).Error; err != nil {
		return nil, storeErr(err)
	}
	return dishes, nil
}

func (s *MenuService) Get(ctx context.Context, id uint) (*models.Dish, error) {
	var d models.Dish
	if err := s.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, notFoundOr(err, "dish %d not found", id)
	}
	return &d, nil
}

func (s *MenuService) Create(ctx context.Context, in DishInput) (*models.Dish, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, Validation("dish name is required")
	}
	if in.Price == nil || *in.Price <= 0 {
		return nil, Validation("a valid price is required")
	}
	d := &models.Dish{
		Name:      strings.TrimSpace(*in.Name),
		Price:     *in.Price,
		Available: true,
	}
	if in.Category != nil {
		d.Category = strings.TrimSpace(*in.Category)
	}
	if in.Description != nil {
		d.Description = *in.Description
	}
	if in.Available != nil {
		d.Available = *in.Available
	}
	if err := s.db.WithContext(ctx).Create(d).Error; err != nil {
		return nil, storeErr(err)
	}
	return d, nil
}

func (s *MenuService) Update(ctx context.Context, id uint, in DishInput) (*models.Dish, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, Validation("dish name cannot be empty")
		}
		d.Name = strings.TrimSpace(*in.Name)
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return nil, Validation("a valid price is required")
		}
		d.Price = *in.Price
	}
	if in.Category != nil {
		d.Category = strings.TrimSpace(*in.Category)
	}
	if in.Description != nil {
		d.Description = *in.Description
	}
	if in.Available != nil {
		d.Available = *in.Available
	}
	if err := s.db.WithContext(ctx).Save(d).Error; err != nil {
		return nil, storeErr(err)
	}
	return d, nil
}

func (s *MenuService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Dish{}, id)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return NotFound("dish %d not found", id)
	}
	return nil
}

// ToggleAvailability flips whether the dish can be ordered
func (s *MenuService) ToggleAvailability(ctx context.Context, id uint) (*models.Dish, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	available := !d.Available
	return s.Update(ctx, id, DishInput{Available: &available})
}

func (s *MenuService) Stats(ctx context.Context) (*MenuStats, error) {
	var stats MenuStats
	err := s.db.WithContext(ctx).Model(&models.Dish{}).
		Select("COUNT(*) AS total, " +
			"COALESCE(SUM(CASE WHEN available THEN 1 ELSE 0 END), 0) AS available, " +
			"COUNT(DISTINCT category) AS categories").
		Scan(&stats).Error
	if err != nil {
		return nil, storeErr(err)
	}
	stats.Unavailable = stats.Total - stats.Available
	return &stats, nil
}

// Categories lists categories of available dishes with their dish count
func (s *MenuService) Categories(ctx context.Context) ([]CategoryCount, error) {
	var out []CategoryCount
	err := s.db.WithContext(ctx).Model(&models.Dish{}).
		Select("category, COUNT(*) AS count").
		Where("available = ?", true).
		Group("category").Order("category").
		Scan(&out).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

// Menu returns the available dishes grouped by category
func (s *MenuService) Menu(ctx context.Context) (*Menu, error) {
	var dishes []models.Dish
	if err := s.db.WithContext(ctx).Where("available = ?", true).
		Order("category, name").Find(&dishes).Error; err != nil {
		return nil, storeErr(err)
	}
	menu := &Menu{Categories: []string{}, Menu: map[string][]models.Dish{}, Dishes: len(dishes)}
	for _, d := range dishes {
		if _, ok := menu.Menu[d.Category]; !ok {
			menu.Categories = append(menu.Categories, d.Category)
		}
		menu.Menu[d.Category] = append(menu.Menu[d.Category], d)
	}
	return menu, nil
}

// ByCategory returns the available dishes of one category
func (s *MenuService) ByCategory(ctx context.Context, category string) ([]models.Dish, error) {
	var dishes []models.Dish
	if err := s.db.WithContext(ctx).Where("category = ? AND available = ?", category, true).
		Order("name").Find(&dishes).Error; err != nil {
		return nil, storeErr(err)
	}
	return dishes, nil
}

// Search matches available dishes by name or description
func (s *MenuService) Search(ctx context.Context, term string) ([]models.Dish, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, Validation("search term is required")
	}
	like := "%" + term + "%"
	var dishes []models.Dish
	if err := s.db.WithContext(ctx).
		Where("(name LIKE ? OR description LIKE ?) AND available = ?", like, like, true).
		Order("name").Find(&dishes).Error; err != nil {
		return nil, storeErr(err)
	}
	return dishes, nil
}
