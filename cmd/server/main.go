package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VitaminP8/storyline/internal/article"
	"github.com/VitaminP8/storyline/internal/auth"
	"github.com/VitaminP8/storyline/internal/comment"
	"github.com/VitaminP8/storyline/internal/config"
	"github.com/VitaminP8/storyline/internal/httpapi"
	"github.com/VitaminP8/storyline/internal/logging"
	"github.com/VitaminP8/storyline/internal/media"
	"github.com/VitaminP8/storyline/internal/service"
	"github.com/VitaminP8/storyline/internal/storage/memory"
	"github.com/VitaminP8/storyline/internal/storage/postgres"
	"github.com/VitaminP8/storyline/internal/user"
	"github.com/jinzhu/gorm"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	storageType := flag.String("storage", "", "Тип хранилища: memory или postgres (перекрывает STORAGE)")
	configPath := flag.String("config", "", "Путь к YAML конфигу (перекрывает CONFIG_PATH)")
	flag.Parse()

	// загружаем .env из нашего config.go
	config.LoadEnv()

	if *storageType != "" {
		_ = os.Setenv("STORAGE", *storageType)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	log.Logger = logger

	var articleStore article.ArticleStorage
	var commentStore comment.CommentStorage
	var userStore user.UserStorage
	var db *gorm.DB

	switch cfg.Storage {
	case config.StoragePostgres:
		db, err = postgres.Open(cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("database unavailable")
		}
		if err := postgres.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}

		log.Info().Msg("Используется PostgreSQL хранилище")
		userStore = postgres.NewUserPostgresStorage(db)
		articleStore = postgres.NewArticlePostgresStorage(db)
		commentStore = postgres.NewCommentPostgresStorage(db)

	case config.StorageMemory:
		log.Info().Msg("Используется in-memory хранилище")
		memUsers := memory.NewUserMemoryStorage()
		memArticles := memory.NewArticleMemoryStorage(memUsers)
		userStore = memUsers
		articleStore = memArticles
		commentStore = memory.NewCommentMemoryStorage(memArticles, memUsers)
	}

	var store media.Store
	uploadsDir := ""
	switch cfg.Media.Driver {
	case config.MediaMinio:
		store, err = media.NewMinioStore(cfg.Media.Endpoint, cfg.Media.AccessKey, cfg.Media.SecretKey,
			cfg.Media.Bucket, cfg.Media.PublicURL, cfg.Media.UseSSL)
	default:
		var fileStore *media.FileStore
		fileStore, err = media.NewFileStore(cfg.Media.Dir, cfg.Media.BaseURL)
		if err == nil {
			uploadsDir = fileStore.Dir()
		}
		store = fileStore
	}
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Media.Driver).Msg("media storage unavailable")
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("token manager")
	}

	svc := service.New(userStore, articleStore, commentStore, tokens, auth.NewHasher(bcrypt.DefaultCost), store)
	router := httpapi.NewRouter(svc, httpapi.Options{
		CORSOrigin:     cfg.CORSOrigin,
		MaxUploadBytes: cfg.MaxUploadBytes,
		UploadsDir:     uploadsDir,
	}, logger)

	// HTTP сервер
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// запуск HTTP сервера
	go func() {
		log.Info().Str("addr", server.Addr).Msg("Сервер запущен")
		// ListenAndServe блокирует, пока не выполнится server.Shutdown() или не случится фатальная ошибка
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Ошибка сервера")
		}
	}()

	// Ожидание SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Завершение...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Ошибка при завершении сервера")
	}

	// соединение с базой закрываем после того, как обработаны последние запросы
	if err := postgres.Close(db); err != nil {
		log.Error().Err(err).Msg("close database")
	}

	log.Info().Msg("Сервер остановлен корректно")
}
