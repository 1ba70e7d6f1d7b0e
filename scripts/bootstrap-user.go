package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/lumeo/lumeo/internal/auth"
	"github.com/lumeo/lumeo/internal/model"
	"github.com/lumeo/lumeo/internal/repository"
)

type output struct {
	UserID      string `json:"user_id"`
	IdentityKey string `json:"identity_key"`
	Email       string `json:"email"`
	Plan        string `json:"plan"`
	Credits     int    `json:"credits"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		email       = flag.String("email", "demo@lumeo.local", "User email")
		name        = flag.String("name", "Demo User", "Display name")
		password    = flag.String("password", "", "Password (optional; passwordless records accept any password on the demo login)")
		plan        = flag.String("plan", string(model.PlanFree), "Plan (free, starter, pro, business)")
		credits     = flag.Int("credits", model.DefaultSignupCredits, "Starting credit balance")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	normalizedEmail := strings.ToLower(strings.TrimSpace(*email))
	if normalizedEmail == "" {
		fmt.Fprintln(os.Stderr, "email is required")
		os.Exit(1)
	}

	userPlan := model.Plan(*plan)
	if !userPlan.IsValid() {
		fmt.Fprintf(os.Stderr, "invalid plan: %s\n", *plan)
		os.Exit(1)
	}
	if *credits < 0 {
		fmt.Fprintln(os.Stderr, "credits must be non-negative")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	if existing, err := repo.GetUserByEmail(ctx, normalizedEmail); err == nil {
		fmt.Fprintf(os.Stderr, "email %s already used by user %s\n", normalizedEmail, existing.ID)
		os.Exit(1)
	}

	user := &model.User{
		ID:          ulid.Make().String(),
		IdentityKey: "email:" + normalizedEmail,
		Email:       normalizedEmail,
		Name:        *name,
		Plan:        userPlan,
	}

	if *password != "" {
		hash, err := auth.HashPassword(*password)
		if err != nil {
			fmt.Fprintln(os.Stderr, "hash password:", err)
			os.Exit(1)
		}
		user.PasswordHash = &hash
	}

	var grant *model.CreditTransaction
	if *credits > 0 {
		grant = &model.CreditTransaction{
			ID:          ulid.Make().String(),
			UserID:      user.ID,
			Amount:      *credits,
			Type:        model.TransactionBonus,
			Action:      "signup_grant",
			Description: "Bootstrap credits",
		}
	}

	if err := repo.ProvisionUser(ctx, user, grant); err != nil {
		fmt.Fprintln(os.Stderr, "provision user:", err)
		os.Exit(1)
	}

	out := output{
		UserID:      user.ID,
		IdentityKey: user.IdentityKey,
		Email:       user.Email,
		Plan:        string(user.Plan),
		Credits:     *credits,
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Println(out.UserID)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}
