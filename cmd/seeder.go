package cmd

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
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
			for _, table := range []string{"user_roles", "role_permissions", "incidents", "users", "roles", "permissions", "enterprises"} {
				if _, err := db.Exec("DELETE FROM " + table); err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		enterpriseID := seedEnterprise(db, "TechCorp", "techcorp")

		permissionIDs := seedPermissions(db, []string{
			"view_incidents",
			"edit_incidents",
			"delete_users",
			"manage_system",
		})

		roleIDs := map[string]int64{}
		rolePermissions := map[string][]string{
			"incident_viewer":  {"view_incidents"},
			"incident_manager": {"view_incidents", "edit_incidents"},
			"tenant_admin":     {"view_incidents", "edit_incidents", "delete_users"},
			"platform_admin":   {"manage_system"},
		}
		for role, perms := range rolePermissions {
			roleIDs[role] = seedRole(db, role, perms, permissionIDs)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("password"), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}

		users := []struct {
			Email    string
			Name     string
			UserType string
			Role     string
			Tenant   *string
		}{
			{"client@techcorp.test", "Client User", "CLIENT", "incident_viewer", &enterpriseID},
			{"employee@techcorp.test", "Employee User", "EMPLOYEE", "incident_manager", &enterpriseID},
			{"admin@techcorp.test", "Tenant Admin", "ADMIN", "tenant_admin", &enterpriseID},
			{"root@oceanix.space", "Platform Operator", "SUPER_ADMIN", "platform_admin", nil},
		}

		for _, u := range users {
			userID := seedUser(db, u.Email, u.Name, string(hash), u.UserType, u.Tenant)
			if _, err := db.Exec(
				"INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
				userID, roleIDs[u.Role]); err != nil {
				log.Fatalf("failed to assign role %s to %s: %v", u.Role, u.Email, err)
			}
			fmt.Printf("Seeded user %s (%s, role %s)\n", u.Email, u.UserType, u.Role)
		}

		fmt.Println("Seeding completed")
	},
}

func seedEnterprise(db *sqlx.DB, name, subdomain string) string {
	var id string
	err := db.QueryRow("SELECT id FROM enterprises WHERE subdomain = $1", subdomain).Scan(&id)
	if err == nil {
		fmt.Printf("Enterprise %s already exists\n", subdomain)
		return id
	}

	id = uuid.New().String()
	if _, err := db.Exec(
		"INSERT INTO enterprises (id, name, subdomain, is_active, created_at, updated_at) VALUES ($1, $2, $3, true, now(), now())",
		id, name, subdomain); err != nil {
		log.Fatalf("failed to insert enterprise %s: %v", subdomain, err)
	}
	fmt.Printf("Seeded enterprise %s (subdomain %s)\n", name, subdomain)
	return id
}

func seedPermissions(db *sqlx.DB, names []string) map[string]int64 {
	ids := make(map[string]int64, len(names))
	for _, name := range names {
		var id int64
		if err := db.QueryRow("SELECT id FROM permissions WHERE name = $1", name).Scan(&id); err != nil {
			if err := db.QueryRow(
				"INSERT INTO permissions (name, is_active) VALUES ($1, true) RETURNING id",
				name).Scan(&id); err != nil {
				log.Fatalf("failed to insert permission %s: %v", name, err)
			}
		}
		ids[name] = id
	}
	return ids
}

func seedRole(db *sqlx.DB, name string, perms []string, permissionIDs map[string]int64) int64 {
	var id int64
	if err := db.QueryRow("SELECT id FROM roles WHERE name = $1", name).Scan(&id); err != nil {
		if err := db.QueryRow("INSERT INTO roles (name) VALUES ($1) RETURNING id", name).Scan(&id); err != nil {
			log.Fatalf("failed to insert role %s: %v", name, err)
		}
	}
	for _, perm := range perms {
		if _, err := db.Exec(
			"INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			id, permissionIDs[perm]); err != nil {
			log.Fatalf("failed to grant permission %s to role %s: %v", perm, name, err)
		}
	}
	return id
}

func seedUser(db *sqlx.DB, email, name, passwordHash, userType string, enterpriseID *string) int64 {
	var id int64
	if err := db.QueryRow("SELECT id FROM users WHERE email = $1", email).Scan(&id); err == nil {
		return id
	}

	if err := db.QueryRow(
		"INSERT INTO users (email, name, password_hash, user_type, enterprise_id, is_active, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, true, now(), now()) RETURNING id",
		email, name, passwordHash, userType, enterpriseID).Scan(&id); err != nil {
		log.Fatalf("failed to insert user %s: %v", email, err)
	}
	return id
}
