// seed inserts a few test accounts into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/istl-web/auth-service/internal/infrastructure/postgres"
	"golang.org/x/crypto/bcrypt"
)

type account struct {
	name     string
	mobile   string
	email    string
	password string
	role     string
}

var accounts = []account{
	{"Seed User", "9000000001", "user@seed.local", "password1", "user"},
	{"Seed User Two", "9000000002", "user2@seed.local", "password2", "user"},
	{"Seed Admin", "9000000009", "admin@seed.local", "adminpass", "admin"},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	var inserted, skipped int
	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hash password for %s: %v", a.email, err)
		}

		var id int64
		// Skip accounts that already exist (idempotent re-runs)
		err = pool.QueryRow(ctx, `
			INSERT INTO users (name, mobile_number, email, password_hash, role)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (email) DO NOTHING
			RETURNING id`,
			a.name, a.mobile, a.email, string(hash), a.role,
		).Scan(&id)
		if err != nil {
			skipped++
			continue
		}
		inserted++
		fmt.Printf("  %-18s id=%d role=%s\n", a.email, id, a.role)
	}

	fmt.Println()
	fmt.Printf("Seed complete: %d created, %d already existed\n", inserted, skipped)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  curl -s -X POST http://localhost:8080/login \\")
	fmt.Println("    -H 'Content-Type: application/json' \\")
	fmt.Println("    -d '{\"identifier\":\"user@seed.local\",\"password\":\"password1\"}' -c cookies.txt")
	fmt.Println()
	fmt.Println("  curl -s -X PUT http://localhost:8080/change-name \\")
	fmt.Println("    -H 'Content-Type: application/json' \\")
	fmt.Println("    -d '{\"name\":\"Renamed\"}' -b cookies.txt")
}
