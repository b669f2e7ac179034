// CLI tool to register a user row so their bearer token (whose subject is the
// printed id) is accepted by the API.
// Usage: go run ./cmd/create-user
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/DragosStezar/FitTrack/internal/config"
)

func main() {
	if err := config.LoadEnvFile(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		os.Exit(1)
	}

	conn, err := pgx.Connect(context.Background(), os.Getenv("FITTRACK_DATABASE_URL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(context.Background())

	reader := bufio.NewReader(os.Stdin)
	username := prompt(reader, "Username: ")
	email := prompt(reader, "Email: ")
	userType, err := normalizeUserType(prompt(reader, "Type (basic/premium) [basic]: "))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	userID := uuid.New()
	_, err = conn.Exec(context.Background(),
		`INSERT INTO users (id, username, email, user_type) VALUES ($1, $2, $3, $4)`,
		userID, username, email, userType,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nUser created successfully!\n")
	fmt.Printf("  ID:       %s\n", userID)
	fmt.Printf("  Username: %s\n", username)
	fmt.Printf("  Type:     %s\n", userType)
}

func prompt(r *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := r.ReadString('\n')
	return strings.TrimSpace(line)
}

// normalizeUserType maps empty input to "basic" and rejects unknown tiers.
func normalizeUserType(s string) (string, error) {
	switch t := strings.ToLower(strings.TrimSpace(s)); t {
	case "":
		return "basic", nil
	case "basic", "premium":
		return t, nil
	default:
		return "", fmt.Errorf("unknown user type %q (want basic or premium)", s)
	}
}
