package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/artline-tech/shop-backend/internal/cfg"
	v1Http "github.com/artline-tech/shop-backend/internal/delivery/v1/http"
	"github.com/artline-tech/shop-backend/internal/infrastructure/kafka"
	minioInfra "github.com/artline-tech/shop-backend/internal/infrastructure/minio"
	s3Repo "github.com/artline-tech/shop-backend/internal/repository/minio"
	"github.com/artline-tech/shop-backend/internal/repository/pgdb"
	pgdbConv "github.com/artline-tech/shop-backend/internal/repository/pgdb/converter/generated"
	"github.com/artline-tech/shop-backend/internal/repository/redis"
	redisConv "github.com/artline-tech/shop-backend/internal/repository/redis/converter/generated"
	"github.com/artline-tech/shop-backend/internal/usecase"
	"github.com/artline-tech/shop-backend/pkg/clients"
	"github.com/artline-tech/shop-backend/pkg/closer"
	"github.com/artline-tech/shop-backend/pkg/e"
	"github.com/artline-tech/shop-backend/pkg/logger"
	"github.com/artline-tech/shop-backend/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const shutdownTimeout = 10 * time.Second

// App собирает все зависимости приложения и управляет их жизненным циклом.
type App struct {
	cfg    *config.Config
	logger logger.Logger

	httpSrv      *v1Http.Server
	imagesInfra  *minioInfra.MinioInfrastructure
	outboxWorker *kafka.OutboxWorker

	closer *closer.Closer

	appCtx    context.Context
	appCancel context.CancelFunc
}

// NewApp инициализирует все ресурсы приложения: базу, кеш, хранилище
// изображений, продюсер Kafka и HTTP-сервер. Ресурсы регистрируются
// в closer и освобождаются в обратном порядке при остановке.
func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	appCtx, appCancel := context.WithCancel(context.Background())

	a := &App{
		cfg:       cfg,
		logger:    log,
		closer:    closer.NewCloser(0),
		appCtx:    appCtx,
		appCancel: appCancel,
	}

	db, err := initPGDB(log, cfg)
	if err != nil {
		appCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add(func(ctx context.Context) error {
		db.Close()
		return nil
	})

	prConv := pgdbConv.NewProductConverterImpl()
	catConv := pgdbConv.NewCategoryConverterImpl()
	giftConv := pgdbConv.NewGiftCategoryConverterImpl()
	itemConv := pgdbConv.NewCartItemConverterImpl()
	orderConv := pgdbConv.NewOrderConverterImpl()
	outboxConv := pgdbConv.NewOutboxEventConverterImpl()
	infoConv := redisConv.NewProductInfoConverterImpl()

	productRepo := pgdb.NewProductRepo(db.Pool, prConv)
	categoryRepo := pgdb.NewCategoryRepo(db.Pool, catConv, giftConv)
	variationRepo := pgdb.NewVariationRepo(db.Pool)
	cartRepo := pgdb.NewCartRepo(db.Pool)
	cartItemRepo := pgdb.NewCartItemRepo(db.Pool, itemConv)
	orderRepo := pgdb.NewOrderRepo(db.Pool, orderConv)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, outboxConv)

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		appCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
		minioCancel()
		appCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	minioCancel()

	imageRepo := s3Repo.NewImageRepo(minioClient, cfg.Minio)
	a.imagesInfra = minioInfra.NewMinioInfrastructure(imageRepo, cfg.Minio, log, appCtx)
	a.closer.Add(func(ctx context.Context) error {
		return a.imagesInfra.WaitForCleanup(ctx)
	})

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(redisCtx); err != nil {
		redisCancel()
		appCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	redisCancel()
	a.closer.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})

	cacheRepo := redis.NewCacheRepo(redisClient, infoConv, cfg.Redis, log)
	sessionRepo := redis.NewSessionRepo(redisClient, cfg.Session)

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		appCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		appCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	a.outboxWorker = kafka.NewOutboxWorker(outboxRepo, log, producer, db.Dsn)
	a.closer.Add(func(ctx context.Context) error {
		a.outboxWorker.Stop()
		return nil
	})

	cartUC := usecase.NewCartUC(cartRepo, cartItemRepo, productRepo, variationRepo, cacheRepo, db.Pool, log)
	orderUC := usecase.NewOrderUC(orderRepo, cartItemRepo, productRepo, variationRepo, outboxRepo, db.Pool, log)
	storeUC := usecase.NewStoreUC(
		productRepo,
		categoryRepo,
		variationRepo,
		cartRepo,
		cartItemRepo,
		cacheRepo,
		a.imagesInfra,
		db.Pool,
		log,
		cfg.Store.PageSize,
	)

	identity := v1Http.NewIdentityMiddleware(sessionRepo, cfg.Session, log)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(storeUC, cartUC, orderUC, identity)

	a.httpSrv = v1Http.NewServer(r, cfg.Http)
	a.closer.Add(func(ctx context.Context) error {
		return a.httpSrv.Stop(ctx)
	})

	return a, nil
}

// Run запускает outbox-воркер и HTTP-сервер и блокируется до сигнала
// завершения либо фатальной ошибки сервера.
func (a *App) Run() error {
	a.outboxWorker.Start(a.appCtx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	a.appCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("shutdown finished with errors: %v", err)
	}

	a.logger.Infof("Application shutdown complete")

	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
