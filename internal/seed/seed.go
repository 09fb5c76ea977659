// Package seed loads the demo accounts, catalog and menus. Every record has a
// fixed id, so running it again only fills in what is missing.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"hostelfood/internal/auth"
	"hostelfood/internal/model"
	"hostelfood/internal/repository"
	"hostelfood/internal/window"
)

// Report counts the records created by one run.
type Report struct {
	Users     int
	MenuItems int
	Menus     int
}

type account struct {
	id, email, password, name string
	role                      model.Role
	hostelID                  string
}

var accounts = []account{
	{id: "admin-001", email: "admin@hostel.com", password: "admin123", name: "Admin User", role: model.RoleAdmin},
	{id: "student-001", email: "student@hostel.com", password: "student123", name: "John Doe", role: model.RoleStudent, hostelID: "H-101"},
}

type catalogItem struct {
	id, name    string
	category    model.Category
	mealType    model.MealType
	description string
}

var catalog = []catalogItem{
	{"item-b1", "Idli Sambar", model.CategoryVeg, model.MealBreakfast, "Steamed rice cakes with lentil curry"},
	{"item-b2", "Poha", model.CategoryVeg, model.MealBreakfast, "Flattened rice with peanuts and spices"},
	{"item-b3", "Toast & Butter", model.CategoryVeg, model.MealBreakfast, "Toasted bread with butter"},
	{"item-b4", "Egg Omelette", model.CategoryNonVeg, model.MealBreakfast, "Fluffy egg omelette"},

	{"item-l1", "Dal Rice", model.CategoryVeg, model.MealLunch, "Lentils with steamed rice"},
	{"item-l2", "Chapati", model.CategoryVeg, model.MealLunch, "Whole wheat flatbread"},
	{"item-l3", "Paneer Curry", model.CategoryVeg, model.MealLunch, "Cottage cheese in rich gravy"},
	{"item-l4", "Chicken Curry", model.CategoryNonVeg, model.MealLunch, "Spicy chicken curry"},
	{"item-l5", "Curd", model.CategoryVeg, model.MealLunch, "Fresh yogurt"},

	{"item-d1", "Roti", model.CategoryVeg, model.MealDinner, "Indian flatbread"},
	{"item-d2", "Mixed Veg Curry", model.CategoryVeg, model.MealDinner, "Assorted vegetables in curry"},
	{"item-d3", "Rice", model.CategoryVeg, model.MealDinner, "Steamed basmati rice"},
	{"item-d4", "Fish Fry", model.CategoryNonVeg, model.MealDinner, "Crispy fried fish"},
	{"item-d5", "Salad", model.CategoryVeg, model.MealDinner, "Fresh vegetable salad"},
}

type menuPlan struct {
	id       string
	dayDelta int
	mealType model.MealType
	itemIDs  []string
}

var menus = []menuPlan{
	{"menu-today-breakfast", 0, model.MealBreakfast, []string{"item-b1", "item-b2", "item-b3", "item-b4"}},
	{"menu-today-lunch", 0, model.MealLunch, []string{"item-l1", "item-l2", "item-l3", "item-l4", "item-l5"}},
	{"menu-today-dinner", 0, model.MealDinner, []string{"item-d1", "item-d2", "item-d3", "item-d4", "item-d5"}},
	{"menu-tomorrow-breakfast", 1, model.MealBreakfast, []string{"item-b1", "item-b2", "item-b3", "item-b4"}},
}

// Seeder writes the demo data through the repositories.
type Seeder struct {
	repos  repository.Repositories
	hasher *auth.PasswordHasher
	now    func() time.Time
}

// New creates a seeder. A nil now uses time.Now.
func New(repos repository.Repositories, hasher *auth.PasswordHasher, now func() time.Time) *Seeder {
	if now == nil {
		now = time.Now
	}
	return &Seeder{repos: repos, hasher: hasher, now: now}
}

// Run seeds users, then menu items, then today's and tomorrow's menus.
func (s *Seeder) Run(ctx context.Context) (Report, error) {
	var report Report
	now := s.now().UTC()

	for _, a := range accounts {
		created, err := s.seedUser(ctx, a, now)
		if err != nil {
			return report, fmt.Errorf("seed user %s: %w", a.email, err)
		}
		if created {
			report.Users++
			logrus.WithField("email", a.email).Info("user created")
		}
	}

	for _, it := range catalog {
		created, err := s.seedItem(ctx, it, now)
		if err != nil {
			return report, fmt.Errorf("seed item %s: %w", it.id, err)
		}
		if created {
			report.MenuItems++
		}
	}

	// seeded menus carry the meal-band windows even while ordering is open
	bands := window.MealBands{Now: s.now}
	for _, m := range menus {
		created, err := s.seedMenu(ctx, m, bands, now)
		if err != nil {
			return report, fmt.Errorf("seed menu %s: %w", m.id, err)
		}
		if created {
			report.Menus++
		}
	}

	logrus.WithFields(logrus.Fields{
		"users":      report.Users,
		"menu_items": report.MenuItems,
		"menus":      report.Menus,
	}).Info("seed completed")
	return report, nil
}

func (s *Seeder) seedUser(ctx context.Context, a account, now time.Time) (bool, error) {
	_, err := s.repos.Users.FindByEmail(ctx, a.email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	hash, err := s.hasher.Hash(a.password)
	if err != nil {
		return false, err
	}
	user := &model.User{
		ID:           a.id,
		Email:        a.email,
		Name:         a.name,
		Role:         a.role,
		PasswordHash: hash,
		CreatedAt:    now,
	}
	if a.hostelID != "" {
		hostel := a.hostelID
		user.HostelID = &hostel
	}
	return true, s.repos.Users.Create(ctx, user)
}

func (s *Seeder) seedItem(ctx context.Context, it catalogItem, now time.Time) (bool, error) {
	_, err := s.repos.MenuItems.FindByID(ctx, it.id)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	description := it.description
	return true, s.repos.MenuItems.Create(ctx, &model.MenuItem{
		ID:          it.id,
		Name:        it.name,
		Category:    it.category,
		MealType:    it.mealType,
		Description: &description,
		CreatedAt:   now,
	})
}

func (s *Seeder) seedMenu(ctx context.Context, m menuPlan, bands window.Policy, now time.Time) (bool, error) {
	_, err := s.repos.Menus.FindByID(ctx, m.id)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	date := now.AddDate(0, 0, m.dayDelta).Format(model.DateLayout)
	win := bands.Window(m.mealType, date)
	return true, s.repos.Menus.Create(ctx, &model.Menu{
		ID:             m.id,
		Date:           date,
		MealType:       m.mealType,
		ItemIDs:        m.itemIDs,
		Status:         model.MenuStatusPublished,
		SelectionStart: win.Start,
		SelectionEnd:   win.End,
		CreatedAt:      now,
	})
}
