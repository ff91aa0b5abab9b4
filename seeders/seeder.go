// Package seeders loads a small demo dataset: two teams, a few categories and
// machines, and one account per role. Safe to run repeatedly.
package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

func Run(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("seeding demo data...")

	teamIDs, err := seedTeams(ctx, db)
	if err != nil {
		return err
	}
	categoryIDs, err := seedCategories(ctx, db)
	if err != nil {
		return err
	}
	userIDs, err := seedUsers(ctx, db, teamIDs)
	if err != nil {
		return err
	}
	if err := seedEquipment(ctx, db, categoryIDs, teamIDs, userIDs); err != nil {
		return err
	}

	log.Println("done.")
	return nil
}

func seedTeams(ctx context.Context, db *pgxpool.Pool) (map[string]uint64, error) {
	teams := []struct{ name, description string }{
		{"Mechanical", "Pumps, presses and everything that moves"},
		{"IT Support", "Workstations, printers and network gear"},
	}

	ids := make(map[string]uint64, len(teams))
	for _, t := range teams {
		var id uint64
		err := db.QueryRow(ctx, "SELECT id FROM maintenance_teams WHERE name = $1", t.name).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			err = db.QueryRow(ctx,
				"INSERT INTO maintenance_teams (name, description) VALUES ($1, $2) RETURNING id",
				t.name, t.description).Scan(&id)
		}
		if err != nil {
			return nil, fmt.Errorf("seed team %s: %w", t.name, err)
		}
		ids[t.name] = id
	}
	return ids, nil
}

func seedCategories(ctx context.Context, db *pgxpool.Pool) (map[string]uint64, error) {
	categories := []struct{ name, company string }{
		{"Machinery", "Acme Manufacturing"},
		{"Computers", "Acme Manufacturing"},
		{"Vehicles", "Acme Manufacturing"},
	}

	ids := make(map[string]uint64, len(categories))
	for _, c := range categories {
		var id uint64
		err := db.QueryRow(ctx, "SELECT id FROM equipment_categories WHERE name = $1", c.name).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			err = db.QueryRow(ctx,
				"INSERT INTO equipment_categories (name, company) VALUES ($1, $2) RETURNING id",
				c.name, c.company).Scan(&id)
		}
		if err != nil {
			return nil, fmt.Errorf("seed category %s: %w", c.name, err)
		}
		ids[c.name] = id
	}
	return ids, nil
}

func seedUsers(ctx context.Context, db *pgxpool.Pool, teamIDs map[string]uint64) (map[string]uint64, error) {
	users := []struct {
		name, email, password, role, team string
	}{
		{"Grace Okafor", "manager@example.com", "password123", "manager", ""},
		{"Tomas Berger", "tech-mech@example.com", "password123", "technician", "Mechanical"},
		{"Lena Vogel", "tech-it@example.com", "password123", "technician", "IT Support"},
		{"Sam Carter", "user@example.com", "password123", "user", ""},
	}

	ids := make(map[string]uint64, len(users))
	for _, u := range users {
		var id uint64
		err := db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", u.email).Scan(&id)
		if err == nil {
			ids[u.email] = id
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("check user %s: %w", u.email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		authID := uuid.NewString()

		if _, err := db.Exec(ctx,
			"INSERT INTO auth_credentials (auth_id, email, password_hash) VALUES ($1, $2, $3)",
			authID, u.email, string(hash)); err != nil {
			return nil, fmt.Errorf("seed credentials %s: %w", u.email, err)
		}

		var teamID interface{}
		if u.team != "" {
			teamID = teamIDs[u.team]
		}
		if err := db.QueryRow(ctx,
			"INSERT INTO users (auth_id, name, email, role, team_id) VALUES ($1, $2, $3, $4, $5) RETURNING id",
			authID, u.name, u.email, u.role, teamID).Scan(&id); err != nil {
			return nil, fmt.Errorf("seed user %s: %w", u.email, err)
		}
		ids[u.email] = id
		log.Printf("  - created %s (%s)", u.email, u.role)
	}
	return ids, nil
}

func seedEquipment(ctx context.Context, db *pgxpool.Pool, categoryIDs, teamIDs, userIDs map[string]uint64) error {
	equipment := []struct {
		name, category, team, department, serial string
	}{
		{"Hydraulic Press A", "Machinery", "Mechanical", "Production", "HP-2201"},
		{"CNC Mill 3", "Machinery", "Mechanical", "Production", "CNC-0043"},
		{"Front Desk Workstation", "Computers", "IT Support", "Administration", "WS-1180"},
		{"Warehouse Forklift", "Vehicles", "Mechanical", "Logistics", "FL-0007"},
	}

	for _, e := range equipment {
		var id uint64
		err := db.QueryRow(ctx, "SELECT id FROM equipment WHERE serial_number = $1", e.serial).Scan(&id)
		if err == nil {
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("check equipment %s: %w", e.serial, err)
		}

		if _, err := db.Exec(ctx, `
			INSERT INTO equipment (name, category_id, company, department, serial_number, maintenance_team_id)
			VALUES ($1, $2, 'Acme Manufacturing', $3, $4, $5)`,
			e.name, categoryIDs[e.category], e.department, e.serial, teamIDs[e.team]); err != nil {
			return fmt.Errorf("seed equipment %s: %w", e.name, err)
		}
		log.Printf("  - created equipment %s", e.name)
	}
	return nil
}
