//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/database"
)

func TestRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Repository Integration Suite")
}

type testEnv struct {
	ctx       context.Context
	container testcontainers.Container
	db        *gorm.DB
}

var env *testEnv

var _ = BeforeSuite(func() {
	var err error
	env, err = setupTestEnv()
	Expect(err).NotTo(HaveOccurred())
})

var _ = AfterSuite(func() {
	if env != nil {
		env.cleanup()
	}
})

var _ = BeforeEach(func() {
	for _, table := range []string{
		"users", "doctors", "appointments", "password_reset_tokens",
		"password_reset_attempts", "activities", "dental_trackings", "user_settings",
	} {
		Expect(env.db.Exec("TRUNCATE TABLE " + table).Error).To(Succeed())
	}
})

func setupTestEnv() (*testEnv, error) {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("dentalcare_test"),
		postgres.WithUsername("dentalcare"),
		postgres.WithPassword("dentalcare"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, err := database.Open(connStr)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	if err := database.Migrate(db); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &testEnv{ctx: ctx, container: container, db: db}, nil
}

func (e *testEnv) cleanup() {
	if sqlDB, err := e.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if e.container != nil {
		_ = e.container.Terminate(e.ctx)
	}
}
