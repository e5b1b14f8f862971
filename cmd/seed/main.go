package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/VitaminP8/storyline/internal/auth"
	"github.com/VitaminP8/storyline/internal/config"
	"github.com/VitaminP8/storyline/internal/logging"
	"github.com/VitaminP8/storyline/internal/seed"
	"github.com/VitaminP8/storyline/internal/storage/postgres"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// seed работает только с postgres: в памяти данные пропали бы вместе с процессом
func main() {
	configPath := flag.String("config", "", "Путь к YAML конфигу (перекрывает CONFIG_PATH)")
	flag.Parse()

	config.LoadEnv()
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	log.Logger = logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
}

func run(cfg config.Config) error {
	db, err := postgres.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := postgres.Close(db); err != nil {
			log.Error().Err(err).Msg("close database")
		}
	}()

	if err := postgres.Migrate(db); err != nil {
		return err
	}

	now := time.Now()
	res, err := seed.Run(db, auth.NewHasher(bcrypt.DefaultCost), rand.New(rand.NewSource(now.UnixNano())), now)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	log.Info().Int("users", res.Users).Int("articles", res.Articles).Msg("database seeded")
	return nil
}
