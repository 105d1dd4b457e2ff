package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/fozemdestaque/portal/internal/auth"
	"github.com/fozemdestaque/portal/internal/config"
	"github.com/fozemdestaque/portal/internal/database"
	"github.com/fozemdestaque/portal/internal/entities"
)

// CreateUserCommand provisions an account and prints its API token.
type CreateUserCommand struct {
	Username string
	Email    string
	Password string
	Role     string
}

// NewCreateUserCommand creates a new CreateUserCommand.
func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{}
}

// ParseFlags parses command line flags.
func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)

	fs.StringVar(&cmd.Username, "username", "", "Login name for the new account")
	fs.StringVar(&cmd.Email, "email", "", "Email address for the new account")
	fs.StringVar(&cmd.Password, "password", "", "Password for the new account")
	fs.StringVar(&cmd.Role, "role", "editor", "Account role: admin, editor or reader")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a portal account and print its API token.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s create-user -username redacao -email redacao@fozemdestaque.com.br -password segredo -role admin\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Username == "" || cmd.Password == "" {
		fs.Usage()
		return fmt.Errorf("-username and -password are required")
	}

	role := entities.Role(cmd.Role)
	switch role {
	case entities.RoleAdmin, entities.RoleEditor, entities.RoleReader:
	default:
		return fmt.Errorf("unknown role %q, expected admin, editor or reader", cmd.Role)
	}

	return nil
}

// Run creates the account.
func (cmd *CreateUserCommand) Run() error {
	cfg := config.NewConfig()

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	hash, err := auth.HashPassword(cmd.Password, cfg.Auth.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := db.CreateUser(cmd.Username, cmd.Email, hash, entities.Role(cmd.Role))
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("Created %s account %q\n", user.Role, user.Username)
	fmt.Printf("API token: %s\n", user.Token)
	return nil
}
