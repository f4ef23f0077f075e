package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gorm.io/gorm"

	"localtrade.backend/internal/config"
	"localtrade.backend/internal/domain/entities"
	"localtrade.backend/internal/infrastructure/datasources"
	"localtrade.backend/internal/infrastructure/repositories"
	"localtrade.backend/internal/usecases"
)

type grantRuntime interface {
	Connect(ctx context.Context, walletAddress string) (*entities.User, error)
	Grant(ctx context.Context, user *entities.User, role string) (*entities.AdminUser, error)
}

type grantDeps struct {
	loadEnv func() error
	loadCfg func() (*config.Config, error)
	prepare func(cfg *config.Config) (grantRuntime, io.Closer, error)
	out     io.Writer
}

type grantRuntimeImpl struct {
	auth  *usecases.AuthUsecase
	admin *usecases.AdminUsecase
}

func (r grantRuntimeImpl) Connect(ctx context.Context, walletAddress string) (*entities.User, error) {
	return r.auth.Connect(ctx, walletAddress)
}

func (r grantRuntimeImpl) Grant(ctx context.Context, user *entities.User, role string) (*entities.AdminUser, error) {
	return r.admin.Grant(ctx, user.ID, role)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

var openDB = datasources.NewConnection

func prepareRuntime(cfg *config.Config) (grantRuntime, io.Closer, error) {
	db, err := openDB(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect db: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := datasources.Migrate(db); err != nil {
			_ = sqlDB.Close()
			return nil, nil, fmt.Errorf("failed to migrate db: %w", err)
		}
	}
	return newRuntime(db, cfg), sqlDB, nil
}

func newRuntime(db *gorm.DB, cfg *config.Config) grantRuntimeImpl {
	userRepo := repositories.NewUserRepository(db)
	return grantRuntimeImpl{
		auth: usecases.NewAuthUsecase(userRepo),
		admin: usecases.NewAdminUsecase(
			repositories.NewAdminRepository(db),
			userRepo,
			repositories.NewReportRepository(db),
			repositories.NewStatsRepository(db),
			repositories.NewUnitOfWork(db),
			cfg.Admin.StatsCacheTTL,
		),
	}
}

func defaultGrantDeps() grantDeps {
	return grantDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: prepareRuntime,
		out:     os.Stdout,
	}
}

func runGrantAdmin(args []string, deps grantDeps) error {
	def := defaultGrantDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.prepare == nil {
		deps.prepare = def.prepare
	}
	if deps.out == nil {
		deps.out = def.out
	}

	fs := pflag.NewFlagSet("grant-admin", pflag.ContinueOnError)
	walletFlag := fs.StringP("wallet", "w", "", "wallet address to grant admin (required)")
	roleFlag := fs.String("role", entities.AdminRoleDefault, "admin role label")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *walletFlag == "" {
		return fmt.Errorf("--wallet is required")
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := deps.loadCfg()
	if err != nil {
		return err
	}
	runtime, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	ctx := context.Background()
	user, err := runtime.Connect(ctx, *walletFlag)
	if err != nil {
		return fmt.Errorf("failed to resolve wallet %s: %w", *walletFlag, err)
	}
	admin, err := runtime.Grant(ctx, user, *roleFlag)
	if err != nil {
		return fmt.Errorf("failed granting admin: %w", err)
	}

	_, _ = fmt.Fprintln(deps.out, "Granted admin access")
	_, _ = fmt.Fprintf(deps.out, "user_id=%s\n", user.ID.String())
	_, _ = fmt.Fprintf(deps.out, "wallet_address=%s\n", user.WalletAddress)
	_, _ = fmt.Fprintf(deps.out, "role=%s\n", admin.Role)
	return nil
}

func main() {
	if err := runGrantAdmin(os.Args[1:], defaultGrantDeps()); err != nil {
		log.Fatal(err)
	}
}
