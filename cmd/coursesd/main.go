package main

import (
	"context"
	"database/sql"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	gconfig "github.com/goliatone/go-config/config"
	courses "github.com/goliatone/go-courses"
	"github.com/goliatone/go-courses/cmd/coursesd/config"
	"github.com/goliatone/go-courses/middleware/tokenware"
	"github.com/goliatone/go-logger/glog"
	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Info),
		glog.WithName("coursesd"),
	)

	log := lgr.GetLogger("main")

	ctx := context.Background()

	base, err := config.New()
	if err != nil {
		log.Error("configuration error", "error", err)
		os.Exit(1)
	}

	container := gconfig.New(base).
		WithLogger(lgr.GetLogger("config"))

	if err := container.Load(ctx); err != nil {
		log.Error("configuration error", "error", err)
		os.Exit(1)
	}

	cfg := container.Raw()
	if err := cfg.Validate(); err != nil {
		log.Error("configuration error", "error", err)
		os.Exit(1)
	}

	db, err := setupPersistence(ctx, cfg.GetPersistence(), lgr)
	if err != nil {
		log.Error("persistence error", "error", err)
		os.Exit(1)
	}

	repo := courses.NewRepositoryManager(db)
	repo.MustValidate()

	tokens, err := courses.NewTokenService(cfg.GetAuth(), lgr.GetLogger("tokens"))
	if err != nil {
		// a missing signing key is fatal at startup, never per request
		log.Error("token service error", "error", err)
		os.Exit(1)
	}

	auth := courses.NewAuthenticator(repo, tokens).
		WithLogger(lgr.GetLogger("auth"))

	ctrl := courses.NewController(
		courses.WithControllerRepo(repo),
		courses.WithControllerAuth(auth),
		courses.WithControllerLogger(lgr.GetLogger("http")),
	)

	app := fiber.New(fiber.Config{
		AppName: "coursesd",
	})

	userGate := tokenware.New(tokenware.Config{
		Verifier:    tokens,
		Variant:     courses.VariantUser,
		ContextKey:  cfg.GetAuth().GetContextKey(),
		TokenLookup: cfg.GetAuth().GetTokenLookup(),
		AuthScheme:  cfg.GetAuth().GetAuthScheme(),
	})

	adminGate := tokenware.New(tokenware.Config{
		Verifier:    tokens,
		Variant:     courses.VariantAdmin,
		ContextKey:  cfg.GetAuth().GetContextKey(),
		TokenLookup: cfg.GetAuth().GetTokenLookup(),
		AuthScheme:  cfg.GetAuth().GetAuthScheme(),
	})

	courses.RegisterRoutes(app, ctrl, userGate, adminGate)

	go func() {
		if err := app.Listen(":" + cfg.GetApp().GetPort()); err != nil {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("coursesd listening", "port", cfg.GetApp().GetPort())

	waitExitSignal()

	if err := app.Shutdown(); err != nil {
		log.Error("shutdown error", "error", err)
	}
}

func setupPersistence(ctx context.Context, cfg *config.Persistence, lgr *glog.BaseLogger) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.GetDSN())
	if err != nil {
		return nil, err
	}

	persistence.RegisterModel((*courses.User)(nil))
	persistence.RegisterModel((*courses.Admin)(nil))
	persistence.RegisterModel((*courses.Course)(nil))
	persistence.RegisterModel((*courses.Purchase)(nil))

	client, err := persistence.New(cfg, sqldb, sqlitedialect.New())
	if err != nil {
		return nil, err
	}

	client.SetLogger(lgr.GetLogger("persistence"))

	migrationsFS, err := fs.Sub(courses.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return nil, err
	}

	client.RegisterDialectMigrations(
		migrationsFS,
		persistence.WithDialectSourceLabel("data/sql/migrations"),
		persistence.WithValidationTargets("postgres", "sqlite"),
	)

	if err := client.ValidateDialects(ctx); err != nil {
		return nil, err
	}

	if err := client.Migrate(ctx); err != nil {
		return nil, err
	}

	return client.DB(), nil
}

func waitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
