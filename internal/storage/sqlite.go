// internal/storage/sqlite.go
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"mcp-meal-plan/internal/models"
)

var ErrPlanNotFound = errors.New("plan not found")

// createdAtLayout is fixed width so created_at sorts chronologically as text.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	// foreign_keys is per connection, so it goes in the DSN for every pooled one.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	storage := &SQLiteStorage{db: db}
	if err := storage.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS meal_templates (
        position INTEGER PRIMARY KEY,
        id TEXT NOT NULL UNIQUE,
        name TEXT NOT NULL,
        description TEXT NOT NULL,
        meal_type TEXT NOT NULL,
        target_kcal INTEGER NOT NULL,
        items TEXT NOT NULL,
        tags TEXT NOT NULL
    );

    CREATE TABLE IF NOT EXISTS plans (
        id TEXT PRIMARY KEY,
        profile TEXT NOT NULL,
        target_calories INTEGER NOT NULL,
        protein_g INTEGER NOT NULL,
        carb_g INTEGER NOT NULL,
        fat_g INTEGER NOT NULL,
        reasoning TEXT NOT NULL,
        educational_notes TEXT NOT NULL,
        source TEXT NOT NULL,
        created_at TEXT NOT NULL
    );

    CREATE TABLE IF NOT EXISTS plan_meals (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        plan_id TEXT NOT NULL,
        position INTEGER NOT NULL,
        name TEXT NOT NULL,
        meal_type TEXT NOT NULL,
        time TEXT NOT NULL,
        target_calories INTEGER NOT NULL,
        template TEXT,
        FOREIGN KEY (plan_id) REFERENCES plans(id) ON DELETE CASCADE
    );

    CREATE TABLE IF NOT EXISTS plan_items (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        meal_id INTEGER NOT NULL,
        food_name TEXT NOT NULL,
        quantity REAL NOT NULL,
        measure TEXT NOT NULL,
        kcal REAL NOT NULL,
        protein REAL NOT NULL,
        carb REAL NOT NULL,
        fat REAL NOT NULL,
        FOREIGN KEY (meal_id) REFERENCES plan_meals(id) ON DELETE CASCADE
    );

    CREATE INDEX IF NOT EXISTS idx_plans_created_at ON plans(created_at);
    CREATE INDEX IF NOT EXISTS idx_plan_meals_plan_id ON plan_meals(plan_id);
    CREATE INDEX IF NOT EXISTS idx_plan_items_meal_id ON plan_items(meal_id);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SaveTemplates replaces the stored catalog, keeping the given order.
func (s *SQLiteStorage) SaveTemplates(templates []models.MealTemplate) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM meal_templates`); err != nil {
		return fmt.Errorf("failed to clear templates: %w", err)
	}

	query := `
        INSERT INTO meal_templates (position, id, name, description, meal_type, target_kcal, items, tags)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `
	for i, t := range templates {
		items, err := json.Marshal(t.Items)
		if err != nil {
			return fmt.Errorf("failed to encode items for %s: %w", t.ID, err)
		}
		tags, err := json.Marshal(t.Tags)
		if err != nil {
			return fmt.Errorf("failed to encode tags for %s: %w", t.ID, err)
		}
		_, err = tx.Exec(query,
			i, t.ID, t.Name, t.Description, string(t.MealType), t.TargetKcal,
			string(items), string(tags))
		if err != nil {
			return fmt.Errorf("failed to insert template %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// LoadTemplates returns the stored catalog in its saved order.
func (s *SQLiteStorage) LoadTemplates() ([]models.MealTemplate, error) {
	rows, err := s.db.Query(`
        SELECT id, name, description, meal_type, target_kcal, items, tags
        FROM meal_templates
        ORDER BY position
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	defer rows.Close()

	var templates []models.MealTemplate
	for rows.Next() {
		var t models.MealTemplate
		var mealType, items, tags string
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &mealType, &t.TargetKcal, &items, &tags); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		t.MealType = models.MealType(mealType)
		if err := json.Unmarshal([]byte(items), &t.Items); err != nil {
			return nil, fmt.Errorf("failed to decode items for %s: %w", t.ID, err)
		}
		if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags for %s: %w", t.ID, err)
		}
		templates = append(templates, t)
	}

	return templates, rows.Err()
}

func (s *SQLiteStorage) SavePlan(plan *models.GeneratedMealPlan) error {
	if plan.ID == "" {
		return fmt.Errorf("plan id is required")
	}
	profile, err := json.Marshal(plan.Profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	planQuery := `
        INSERT INTO plans (id, profile, target_calories, protein_g, carb_g, fat_g, reasoning, educational_notes, source, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err = tx.Exec(planQuery,
		plan.ID, string(profile), plan.TargetCalories,
		plan.Macros.ProteinG, plan.Macros.CarbG, plan.Macros.FatG,
		plan.Reasoning, plan.EducationalNotes, string(plan.Source),
		plan.CreatedAt.UTC().Format(createdAtLayout))
	if err != nil {
		return fmt.Errorf("failed to insert plan: %w", err)
	}

	mealQuery := `
        INSERT INTO plan_meals (plan_id, position, name, meal_type, time, target_calories, template)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	itemQuery := `
        INSERT INTO plan_items (meal_id, food_name, quantity, measure, kcal, protein, carb, fat)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `
	for i, meal := range plan.Meals {
		var template sql.NullString
		if meal.Template != nil {
			data, err := json.Marshal(meal.Template)
			if err != nil {
				return fmt.Errorf("failed to encode template for %s: %w", meal.Name, err)
			}
			template = sql.NullString{String: string(data), Valid: true}
		}

		res, err := tx.Exec(mealQuery,
			plan.ID, i, meal.Name, string(meal.MealType), meal.Time, meal.TargetCalories, template)
		if err != nil {
			return fmt.Errorf("failed to insert meal: %w", err)
		}
		mealID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read meal id: %w", err)
		}

		for _, item := range meal.Items {
			_, err = tx.Exec(itemQuery,
				mealID, item.FoodName, item.Quantity, item.Measure,
				item.Kcal, item.Protein, item.Carb, item.Fat)
			if err != nil {
				return fmt.Errorf("failed to insert item: %w", err)
			}
		}
	}

	return tx.Commit()
}

// DeletePlan removes a plan; its meals and items go with it by cascade.
func (s *SQLiteStorage) DeletePlan(id string) error {
	res, err := s.db.Exec(`DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}
	return nil
}

const planColumns = `id, profile, target_calories, protein_g, carb_g, fat_g, reasoning, educational_notes, source, created_at`

func (s *SQLiteStorage) GetPlan(id string) (*models.GeneratedMealPlan, error) {
	row := s.db.QueryRow(`SELECT `+planColumns+` FROM plans WHERE id = ?`, id)
	plan, err := scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if err := s.loadMealsForPlan(plan); err != nil {
		return nil, fmt.Errorf("failed to load meals for plan %s: %w", plan.ID, err)
	}
	return plan, nil
}

// GetPlans returns the most recent plans first.
func (s *SQLiteStorage) GetPlans(limit int) ([]*models.GeneratedMealPlan, error) {
	rows, err := s.db.Query(`SELECT `+planColumns+` FROM plans ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}

	var plans []*models.GeneratedMealPlan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to iterate plans: %w", err)
	}
	rows.Close()

	for _, plan := range plans {
		if err := s.loadMealsForPlan(plan); err != nil {
			return nil, fmt.Errorf("failed to load meals for plan %s: %w", plan.ID, err)
		}
	}

	return plans, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPlan(row scanner) (*models.GeneratedMealPlan, error) {
	plan := &models.GeneratedMealPlan{}
	var profile, source, createdAt string

	err := row.Scan(
		&plan.ID, &profile, &plan.TargetCalories,
		&plan.Macros.ProteinG, &plan.Macros.CarbG, &plan.Macros.FatG,
		&plan.Reasoning, &plan.EducationalNotes, &source, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan plan: %w", err)
	}

	if err := json.Unmarshal([]byte(profile), &plan.Profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	if plan.CreatedAt, err = time.Parse(createdAtLayout, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	plan.Source = models.PlanSource(source)

	return plan, nil
}

func (s *SQLiteStorage) loadMealsForPlan(plan *models.GeneratedMealPlan) error {
	rows, err := s.db.Query(`
        SELECT id, name, meal_type, time, target_calories, template
        FROM plan_meals
        WHERE plan_id = ?
        ORDER BY position
    `, plan.ID)
	if err != nil {
		return fmt.Errorf("failed to query meals: %w", err)
	}

	var ids []int64
	var meals []models.PlannedMeal
	for rows.Next() {
		var id int64
		var meal models.PlannedMeal
		var mealType string
		var template sql.NullString

		if err := rows.Scan(&id, &meal.Name, &mealType, &meal.Time, &meal.TargetCalories, &template); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan meal: %w", err)
		}
		meal.MealType = models.MealType(mealType)
		if template.Valid {
			meal.Template = &models.MealTemplate{}
			if err := json.Unmarshal([]byte(template.String), meal.Template); err != nil {
				rows.Close()
				return fmt.Errorf("failed to decode template for %s: %w", meal.Name, err)
			}
		}
		ids = append(ids, id)
		meals = append(meals, meal)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("failed to iterate meals: %w", err)
	}
	rows.Close()

	for i := range meals {
		items, err := s.loadItemsForMeal(ids[i])
		if err != nil {
			return err
		}
		meals[i].Items = items
	}

	plan.Meals = meals
	return nil
}

func (s *SQLiteStorage) loadItemsForMeal(mealID int64) ([]models.PlanItem, error) {
	rows, err := s.db.Query(`
        SELECT food_name, quantity, measure, kcal, protein, carb, fat
        FROM plan_items
        WHERE meal_id = ?
        ORDER BY id
    `, mealID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := []models.PlanItem{}
	for rows.Next() {
		var item models.PlanItem
		err := rows.Scan(
			&item.FoodName, &item.Quantity, &item.Measure,
			&item.Kcal, &item.Protein, &item.Carb, &item.Fat)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
