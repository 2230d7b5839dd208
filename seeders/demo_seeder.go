package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"maintenance-system/pkg/constants"
	"maintenance-system/pkg/utils"
)

func seedDepartmentsAndZones(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - таблицы 'departments' и 'zones'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, name := range demoDepartmentsData {
		if _, err := tx.Exec(ctx,
			`INSERT INTO departments (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return err
		}
	}

	for _, z := range demoZonesData {
		if _, err := tx.Exec(ctx, `
			INSERT INTO zones (room, room_code, department_id)
			SELECT $1, $2, d.id FROM departments d WHERE d.name = $3
			ON CONFLICT (room_code) DO NOTHING`,
			z.Room, z.RoomCode, z.Department); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func seedEquipments(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - таблица 'equipments'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, e := range demoEquipmentsData {
		if _, err := tx.Exec(ctx, `
			INSERT INTO equipments (name, code, zone_id, department_id)
			SELECT $1, $2, z.id, z.department_id FROM zones z WHERE z.room_code = $3
			ON CONFLICT (code) DO NOTHING`,
			e.Name, e.Code, e.RoomCode); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// seedDemoUsers создаёт по пользователю на роль. Администратор попадает
// в admins, техники — в maintenance_technicians (изначально неактивны).
func seedDemoUsers(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - таблицы 'users', 'admins', 'maintenance_technicians'...")

	hashed, err := utils.HashPassword("Demo12345!")
	if err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, u := range demoUsersData {
		var userID uint64
		err := tx.QueryRow(ctx, `
			INSERT INTO users (fio, email, phone_number, password, role_id, department_id)
			SELECT $1, $2, $3, $4, r.id, (SELECT d.id FROM departments d WHERE d.name = $5)
			FROM roles r WHERE r.name = $6
			ON CONFLICT (email) DO UPDATE SET fio = EXCLUDED.fio
			RETURNING id`,
			u.Fio, u.Email, u.Phone, hashed, u.Department, u.Role).Scan(&userID)
		if err != nil {
			return err
		}

		switch u.Role {
		case constants.RoleAdmin:
			if _, err := tx.Exec(ctx,
				`INSERT INTO admins (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID); err != nil {
				return err
			}
		case constants.RoleTechnician:
			if _, err := tx.Exec(ctx,
				`INSERT INTO maintenance_technicians (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID); err != nil {
				return err
			}
		}
	}
	return tx.Commit(ctx)
}
