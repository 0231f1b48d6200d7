package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hrdesk/feedback-api/internal/core/domain"
	"github.com/hrdesk/feedback-api/internal/core/ports"
	"github.com/hrdesk/feedback-api/internal/core/service"
	mongodb "github.com/hrdesk/feedback-api/internal/infrastructure/db/mongo"
	"github.com/hrdesk/feedback-api/internal/pkg/config"
	"github.com/hrdesk/feedback-api/internal/pkg/password"
)

type bootstrapOptions struct {
	email          string
	username       string
	company        string
	password       string
	passwordStdin  bool
	generatePasswd bool
}

var bootstrapAdmin bootstrapOptions

var bootstrapAdminCmd = &cobra.Command{
	Use:   "bootstrap-admin",
	Short: "Create an admin account under a company name from the command line.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := bootstrapAdmin
		if strings.TrimSpace(opts.email) == "" {
			return errors.New("--email is required")
		}
		if strings.TrimSpace(opts.company) == "" {
			return errors.New("--company is required")
		}
		if opts.username == "" {
			opts.username = strings.SplitN(opts.email, "@", 2)[0]
		}

		pass, generated, err := resolveBootstrapPassword(cmd, opts, os.Stdin)
		if err != nil {
			return err
		}

		cfg, err := config.Load(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())

		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			return err
		}

		// Registration issues a session token; revocation is not needed for that.
		tokens, err := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, nil)
		if err != nil {
			return err
		}
		auth := service.NewAuthService(
			mongodb.NewAdminRepository(db),
			mongodb.NewEmployeeRepository(db),
			password.NewHasher(cfg.Auth.BcryptCost),
			tokens,
			nil,
			zerolog.Nop(),
		)

		admin, err := registerBootstrapAdmin(ctx, auth, opts, pass)
		if errors.Is(err, domain.ErrEmailTaken) {
			cmd.Printf("admin already exists: %s\n", opts.email)
			return nil
		}
		if err != nil {
			return err
		}

		cmd.Printf("created admin %s for %s\n", admin.Email, admin.CompanyName)
		if generated {
			cmd.Printf("generated password: %s\n", pass)
		}
		return nil
	},
}

func init() {
	f := bootstrapAdminCmd.Flags()
	f.StringVar(&bootstrapAdmin.email, "email", "", "admin email (required)")
	f.StringVar(&bootstrapAdmin.username, "username", "", "display name (defaults to the email's local part)")
	f.StringVar(&bootstrapAdmin.company, "company", "", "company name (required)")
	f.StringVar(&bootstrapAdmin.password, "password", "", "admin password (prompted when omitted)")
	f.BoolVar(&bootstrapAdmin.passwordStdin, "password-stdin", false, "read the password from stdin")
	f.BoolVar(&bootstrapAdmin.generatePasswd, "generate-password", false, "generate a random password and print it")
}

func registerBootstrapAdmin(ctx context.Context, auth ports.AuthService, opts bootstrapOptions, pass string) (*domain.Admin, error) {
	_, admin, err := auth.RegisterAdmin(ctx, ports.RegisterAdminInput{
		Username:    opts.username,
		Email:       opts.email,
		Password:    pass,
		CompanyName: opts.company,
	})
	return admin, err
}

func resolveBootstrapPassword(cmd *cobra.Command, opts bootstrapOptions, stdin io.Reader) (string, bool, error) {
	if opts.passwordStdin && opts.generatePasswd {
		return "", false, errors.New("--password-stdin and --generate-password are mutually exclusive")
	}
	if opts.passwordStdin && opts.password != "" {
		return "", false, errors.New("--password-stdin and --password are mutually exclusive")
	}
	if opts.generatePasswd && opts.password != "" {
		return "", false, errors.New("--generate-password and --password are mutually exclusive")
	}

	if opts.passwordStdin {
		pass, err := readLine(stdin)
		if err != nil {
			return "", false, err
		}
		if pass == "" {
			return "", false, errors.New("password is empty")
		}
		return pass, false, nil
	}

	if opts.generatePasswd {
		pass, err := password.Generate(20)
		if err != nil {
			return "", false, err
		}
		return pass, true, nil
	}

	if opts.password != "" {
		return opts.password, false, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", false, errors.New("no password provided (use --password, --password-stdin, or --generate-password)")
	}

	cmd.Print("Password: ")
	pass1, err := term.ReadPassword(fd)
	cmd.Println()
	if err != nil {
		return "", false, err
	}
	if len(pass1) == 0 {
		return "", false, errors.New("password is empty")
	}

	cmd.Print("Confirm password: ")
	pass2, err := term.ReadPassword(fd)
	cmd.Println()
	if err != nil {
		return "", false, err
	}
	if string(pass1) != string(pass2) {
		return "", false, errors.New("passwords do not match")
	}
	return string(pass1), false, nil
}

func readLine(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4*1024), 64*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return "", nil
	}
	return strings.TrimRight(scanner.Text(), "\r\n"), nil
}
