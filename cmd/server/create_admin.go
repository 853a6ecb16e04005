package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/services"
)

type createAdminOptions struct {
	email    string
	password string
	name     string
}

// NewCreateAdminCmd bootstraps the first admin account from the command line.
func NewCreateAdminCmd() *cobra.Command {
	opts := &createAdminOptions{}
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create the first admin account",
		Long:  `Create the first admin account. Fails once any admin exists; further admins are added through the API.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCreateAdmin(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.email, "email", "", "admin email (required)")
	cmd.Flags().StringVar(&opts.password, "password", "", "admin password (required)")
	cmd.Flags().StringVar(&opts.name, "name", "", "admin full name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func runCreateAdmin(cmd *cobra.Command, opts *createAdminOptions) error {
	req := &dto.SaveUserRequest{FullName: opts.name, Email: opts.email, Password: opts.password}
	if err := dto.Validate(req); err != nil {
		return oops.Code("INVALID_INPUT").Wrap(err)
	}

	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}
	db, err := database.Open(cfg.DSN())
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").Wrap(err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	uow := repository.NewFactory(db)
	users := services.NewUserService(uow, services.NewActivityService(uow), cfg.BcryptCost)
	admin, err := users.CreateFirstAdmin(cmd.Context(), req)
	if err != nil {
		return oops.Code("CREATE_ADMIN_FAILED").With("email", opts.email).Wrap(err)
	}

	cmd.Printf("Admin %s created (id %s)\n", admin.Email, admin.ID)
	return nil
}
