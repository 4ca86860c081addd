package config

import (
	"context"
	"log/slog"
	"strings"

	"antika-pos/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const seedPassword = "admin123"

type seedEmployee struct {
	name   string
	role   models.UserRole
	shift  string
	salary float64
	status models.EmployeeStatus
}

var seedEmployees = []seedEmployee{
	{"Rosa Mamani", models.RoleCook, "morning", 1400, models.EmployeeActive},
	{"Ernesto Quispe", models.RoleCook, "afternoon", 1400, models.EmployeeActive},
	{"Milagros Torres", models.RoleCook, "morning", 1300, models.EmployeeActive},
	{"Ana Lucía Flores", models.RoleWaiter, "morning", 1100, models.EmployeeActive},
	{"Jorge Condori", models.RoleWaiter, "afternoon", 1100, models.EmployeeActive},
	{"Carla Sánchez", models.RoleWaiter, "morning", 1100, models.EmployeeLeave},
}

var seedDishes = []models.Dish{
	{Name: "Desayuno Antika", Category: "Desayunos", Price: 14, Description: "Bistec encebollado / Saltado de pollo + café o jugo"},
	{Name: "Desayuno Americano", Category: "Desayunos", Price: 13, Description: "Pan artesanal, huevos al gusto, tocino, jugo y café"},
	{Name: "Tamal Peruano", Category: "Desayunos", Price: 13, Description: "Tamal de maíz con cerdo, sarsa criolla, café y pan"},
	{Name: "Sándwich Lomo Saltado", Category: "Sándwiches", Price: 16, Description: "Lomo saltado jugoso en pan con papas andinas"},
	{Name: "Sándwich Milanesa de Pollo", Category: "Sándwiches", Price: 15, Description: "Milanesa crocante con lechuga, tomate y papas"},
	{Name: "Pan con Chicharrón", Category: "Sándwiches", Price: 12, Description: "Chicharrón de cerdo, camote frito y sarsa criolla"},
	{Name: "Choripán", Category: "Sándwiches", Price: 10, Description: "Chorizo al grill con chimichurri y papas"},
	{Name: "Sándwich Caprese", Category: "Sándwiches", Price: 15, Description: "Tomate, mozzarella, albahaca y pesto"},
	{Name: "Ensalada César", Category: "Ensaladas", Price: 15, Description: "Lechugas, salsa César, parmesano y crutones"},
	{Name: "Ensalada Mango al Curry", Category: "Ensaladas", Price: 16, Description: "Lechugas, tocino, jamón y mango con vinagreta curry"},
	{Name: "Ensalada Campesina", Category: "Ensaladas", Price: 18, Description: "Atún, quinua, aceitunas, tomate y papas doradas"},
	{Name: "Dieta de Pollo", Category: "Sopas", Price: 16, Description: "Caldo de pollo con vegetales"},
	{Name: "Sopa a la Minuta", Category: "Sopas", Price: 18, Description: "Carne tierna, fideos cabello de ángel, huevo y leche"},
	{Name: "Caldo de Gallina", Category: "Sopas", Price: 20, Description: "Gallina de corral, fideos, papa y huevo duro"},
	{Name: "Arroz con Pollo", Category: "Medio Día", Price: 22, Description: "Arroz con cilantro, pollo dorado y papa a la huancaína"},
	{Name: "Lomo Saltado", Category: "Fondos", Price: 28, Description: "Lomo de res al wok con cebolla, tomate y ají amarillo"},
	{Name: "Ají de Gallina", Category: "Medio Día", Price: 22, Description: "Pollo en salsa de ají amarillo con papas y arroz"},
	{Name: "Estofado de Res", Category: "Medio Día", Price: 22, Description: "Res en salsa de vino tinto, tomate y ajo"},
	{Name: "Chaufa de Pollo", Category: "Fondos", Price: 18, Description: "Arroz frito al wok con pollo, huevo y cebollita china"},
	{Name: "Pollo a la Plancha", Category: "Fondos", Price: 22, Description: "Pechuga dorada con especias especiales"},
	{Name: "Bistec a lo Pobre", Category: "Fondos", Price: 27, Description: "Bistec, arroz, papas, huevo frito y plátano"},
	{Name: "Trucha a la Menuere", Category: "Fondos", Price: 24, Description: "Filete de trucha con mantequilla, limón y finas hierbas"},
	{Name: "Trucha Fungi", Category: "Fondos", Price: 25, Description: "Trucha en salsa de champiñones y bechamel"},
	{Name: "Pulpo Anticuchero", Category: "Fondos", Price: 42, Description: "Pulpo marinado en salsa anticuchera con papas y piña"},
	{Name: "Lomo Saltado al Pesto", Category: "Fondos", Price: 32, Description: "Lomo con fettuccine en salsa cremosa a elección"},
	{Name: "Clásica Burger", Category: "Burgers", Price: 13, Description: "Carne de res, lechuga y tomate + papas"},
	{Name: "Cheese Burger", Category: "Burgers", Price: 15, Description: "Carne a la parrilla con queso, lechuga y tomate"},
	{Name: "Bacon Burger", Category: "Burgers", Price: 15, Description: "Carne con tocino ahumado, lechuga y tomate"},
	{Name: "Parrillera Burger", Category: "Burgers", Price: 16, Description: "Carne con chorizo, chimichurri, lechuga y tomate"},
	{Name: "6 Alitas (salsa a elección)", Category: "Alitas", Price: 16, Description: "BBQ, Hot BBQ, Anticucheras, Maracuyá, Crispy"},
	{Name: "Broaster Solo para Mí (2pzas)", Category: "Alitas", Price: 17, Description: "2 piezas de broaster + papas personal"},
	{Name: "Broaster Dúo Conquistador (4pzas)", Category: "Alitas", Price: 32, Description: "4 piezas + 2 papas personales"},
	{Name: "Docena de Nuggets", Category: "Adicionales", Price: 16, Description: "12 nuggets de pollo crujientes"},
	{Name: "Porción Papas Personal", Category: "Adicionales", Price: 3.5, Description: "Papas fritas personales"},
	{Name: "Porción Arroz", Category: "Adicionales", Price: 5, Description: "Porción de arroz blanco"},
}

const seedTables = 12

// Seed loads the starting data set into an empty database. It reports
// false without touching anything when users already exist.
func Seed(ctx context.Context, db *gorm.DB, log *slog.Logger) (bool, error) {
	var users int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&users).Error; err != nil {
		return false, err
	}
	if users > 0 {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		admin := models.User{
			Name: "Admin Principal", Email: "admin@antika.pe", PasswordHash: string(hash),
			Role: models.RoleAdmin, Phone: "999000001", DNI: "00000001", Active: true,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		for _, e := range seedEmployees {
			emp := models.Employee{Name: e.name, Role: string(e.role), Shift: e.shift, Salary: e.salary, Status: e.status}
			if err := tx.Create(&emp).Error; err != nil {
				return err
			}
			u := models.User{
				Name: e.name, Email: seedEmail(e.name), PasswordHash: string(hash),
				Role: e.role, Active: true,
			}
			if err := tx.Create(&u).Error; err != nil {
				return err
			}
		}

		dishes := make([]models.Dish, len(seedDishes))
		copy(dishes, seedDishes)
		for i := range dishes {
			dishes[i].Available = true
		}
		if err := tx.Create(&dishes).Error; err != nil {
			return err
		}

		tables := make([]models.Table, seedTables)
		for i := range tables {
			tables[i] = models.Table{Number: i + 1, Status: models.TableFree, Capacity: 4}
		}
		return tx.Create(&tables).Error
	})
	if err != nil {
		return false, err
	}
	log.Info("database seeded",
		"employees", len(seedEmployees), "dishes", len(seedDishes), "tables", seedTables)
	return true, nil
}

// seedEmail turns "Rosa Mamani" into rosa.mamani@antika.pe
func seedEmail(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), ".") + "@antika.pe"
}
