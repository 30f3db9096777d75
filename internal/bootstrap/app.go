package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "records-backend/internal/auth"
	"records-backend/internal/diary"
	"records-backend/internal/logbook"
	"records-backend/internal/records"
	"records-backend/internal/reports"
	"records-backend/internal/shared/config"
	"records-backend/internal/shared/server"
	"records-backend/internal/shared/server/middleware"
	"records-backend/internal/shared/storage/db"
	"records-backend/internal/shared/storage/object"
	localstore "records-backend/internal/shared/storage/object/local"
	s3store "records-backend/internal/shared/storage/object/s3"
	"records-backend/internal/users"
	"records-backend/internal/watch"
)

// Collection names used for live subscriptions.
const (
	CollectionRecords = "records"
	CollectionDiary   = "diary"
	CollectionLogbook = "logbook"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Hub    *watch.Hub

	UsersRepo   users.Repo
	RecordsRepo records.Repo
	DiaryRepo   diary.Repo
	LogbookRepo logbook.Repo
	Profiles    reports.ProfileStore

	UsersService   *users.Service
	RecordsService *records.Service
	DiaryService   *diary.Service
	LogbookService *logbook.Service
	ReportsService *reports.Service
	GoogleAuth     *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Hub:    watch.NewHub(),
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         cfg,
		UsersHandler:   users.NewHandler(app.UsersService),
		GoogleAuth:     app.GoogleAuth,
		RecordsHandler: records.NewHandler(app.RecordsService),
		DiaryHandler:   diary.NewHandler(app.DiaryService),
		LogbookHandler: logbook.NewHandler(app.LogbookService),
		ReportsHandler: reports.NewHandler(app.ReportsService),
		WatchHandler:   watch.NewHandler(app.Hub, buildWatchSources(app)),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.RecordsRepo = &records.PGRepo{DB: app.DB}
		app.DiaryRepo = &diary.PGRepo{DB: app.DB}
		app.LogbookRepo = &logbook.PGRepo{DB: app.DB}
		app.Profiles = &reports.PGStore{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.RecordsRepo = records.NewMemoryRepo()
		app.DiaryRepo = diary.NewMemoryRepo()
		app.LogbookRepo = logbook.NewMemoryRepo()
		app.Profiles = reports.NewMemoryStore()
	}

	app.UsersService = &users.Service{
		Repo:         app.UsersRepo,
		IsAdminEmail: app.Config.IsAdminEmail,
	}
	app.RecordsService = &records.Service{
		Repo:   app.RecordsRepo,
		Store:  app.Store,
		Notify: app.Hub.NotifyFunc(CollectionRecords),
	}
	app.DiaryService = &diary.Service{
		Repo:   app.DiaryRepo,
		Notify: app.Hub.NotifyFunc(CollectionDiary),
	}
	app.LogbookService = &logbook.Service{
		Repo:   app.LogbookRepo,
		Notify: app.Hub.NotifyFunc(CollectionLogbook),
	}
	app.ReportsService = &reports.Service{
		Profiles: app.Profiles,
		Diary:    app.DiaryService,
		Logbook:  app.LogbookService,
	}
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.UsersService,
	)
}

// buildWatchSources maps each watched collection to a snapshot read scoped
// to the subscriber's identity and role.
func buildWatchSources(app *App) map[string]watch.SourceFunc {
	return map[string]watch.SourceFunc{
		CollectionRecords: func(c *gin.Context) (any, error) {
			actor := records.Actor{
				ID:    middleware.UserIDFromContext(c),
				Email: middleware.UserEmailFromContext(c),
				Role:  middleware.UserRoleFromContext(c),
			}
			return app.RecordsService.List(c.Request.Context(), actor, records.Query{})
		},
		CollectionDiary: func(c *gin.Context) (any, error) {
			return app.DiaryService.List(c.Request.Context(), middleware.UserIDFromContext(c))
		},
		CollectionLogbook: func(c *gin.Context) (any, error) {
			return app.LogbookService.List(c.Request.Context(), middleware.UserIDFromContext(c))
		},
	}
}
