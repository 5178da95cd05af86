package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			for _, table := range []string{"attendance", "employees", "hr_users"} {
				if _, err := db.Exec("DELETE FROM " + table); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		cost := cfg.Security.BCryptCost
		if cost == 0 {
			cost = bcrypt.DefaultCost
		}
		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), cost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		operators := []struct {
			Email string
			Name  string
		}{
			{"admin@hr.com", "HR Admin"},
			{"manager@hr.com", "HR Manager"},
		}

		for _, op := range operators {
			var exists int
			if err := db.QueryRow("SELECT 1 FROM hr_users WHERE email = $1", op.Email).Scan(&exists); err == nil {
				fmt.Println("operator already exists:", op.Email)
				continue
			}

			_, err := db.Exec(
				"INSERT INTO hr_users (email, name, password_hash, created_at, updated_at) VALUES ($1, $2, $3, now(), now())",
				op.Email, op.Name, string(hash),
			)
			if err != nil {
				log.Fatalf("failed to insert operator %s: %v", op.Email, err)
			}
			fmt.Println("Seeded operator:", op.Email)
		}

		employees := []struct {
			Name        string
			Age         int
			Designation string
			HiringDate  string
			DateOfBirth string
			Salary      float64
		}{
			{"Rahim Uddin", 28, "Software Engineer", "2024-01-15", "1997-05-20", 75000.0},
			{"Karim Hossain", 32, "Senior Developer", "2023-06-01", "1993-11-10", 95000.0},
			{"Fatema Akter", 25, "Junior Developer", "2025-02-01", "2000-03-15", 45000.0},
		}

		employeeIDs := make([]int64, 0, len(employees))
		for _, emp := range employees {
			var id int64
			if err := db.QueryRow("SELECT id FROM employees WHERE name = $1 AND deleted_at IS NULL", emp.Name).Scan(&id); err == nil {
				fmt.Println("employee already exists:", emp.Name)
				employeeIDs = append(employeeIDs, id)
				continue
			}

			err := db.QueryRow(
				`INSERT INTO employees (name, age, designation, hiring_date, date_of_birth, salary, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, $5, $6, now(), now()) RETURNING id`,
				emp.Name, emp.Age, emp.Designation, emp.HiringDate, emp.DateOfBirth, emp.Salary,
			).Scan(&id)
			if err != nil {
				log.Fatalf("failed to insert employee %s: %v", emp.Name, err)
			}
			employeeIDs = append(employeeIDs, id)
			fmt.Println("Seeded employee:", emp.Name)
		}

		checkIns := []struct {
			Employee    int
			Date        string
			CheckInTime string
		}{
			{0, "2025-08-01", "09:30:00"},
			{0, "2025-08-02", "10:00:00"},
			{1, "2025-08-01", "09:00:00"},
			{1, "2025-08-02", "09:50:00"},
			{2, "2025-08-01", "09:45:00"},
			{2, "2025-08-02", "09:46:00"},
		}

		for _, ci := range checkIns {
			_, err := db.Exec(
				`INSERT INTO attendance (employee_id, date, check_in_time, created_at, updated_at)
				 VALUES ($1, $2, $3, now(), now())
				 ON CONFLICT (employee_id, date) DO UPDATE SET check_in_time = EXCLUDED.check_in_time, updated_at = now()`,
				employeeIDs[ci.Employee], ci.Date, ci.CheckInTime,
			)
			if err != nil {
				log.Fatalf("failed to insert attendance for employee %d on %s: %v", employeeIDs[ci.Employee], ci.Date, err)
			}
		}

		fmt.Println("Attendance records seeded successfully")
	},
}
