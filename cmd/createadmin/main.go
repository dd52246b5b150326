package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/models"
	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/repositories"
	"github.com/swearleehlairlookus-boop/erp/internal/config"
	"github.com/swearleehlairlookus-boop/erp/internal/core/services"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/logger"
)

// Bootstraps the first administrator account so the API can be used.
// Safe to run again, an existing email is reported and nothing changes.
func main() {
	email := flag.String("email", "", "administrator email address")
	password := flag.String("password", "", "administrator password (min 8 characters)")
	firstName := flag.String("first-name", "System", "first name")
	lastName := flag.String("last-name", "Administrator", "last name")
	phone := flag.String("phone", "", "contact phone number")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: createadmin -email <email> -password <password> [-first-name ...] [-last-name ...]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Init(logger.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	db, err := config.ConnectDatabase(&cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to database: %v\n", err)
		os.Exit(1)
	}

	// Roles must exist before an administrator can be assigned one
	if err := config.NewSeeder(db).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed reference data: %v\n", err)
		os.Exit(1)
	}

	userRepo := repositories.NewUserRepository(db)
	auditService := services.NewAuditService(repositories.NewAuditRepository(db))
	userService := services.NewUserService(userRepo, auditService)

	user, err := userService.CreateUser(context.Background(), &services.CreateUserInput{
		Email:     *email,
		Password:  *password,
		FirstName: *firstName,
		LastName:  *lastName,
		Role:      models.RoleAdministrator,
		Phone:     *phone,
	}, 0, services.RequestMeta{UserAgent: "createadmin-cli"})
	if err != nil {
		if err == services.ErrEmailTaken {
			fmt.Fprintf(os.Stderr, "a user with email %s already exists\n", *email)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "failed to create administrator: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("administrator created: %s (id %d)\n", user.Email, user.ID)
}
