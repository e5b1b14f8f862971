// Package seed наполняет базу демонстрационными пользователями и статьями.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/VitaminP8/storyline/internal/auth"
	"github.com/VitaminP8/storyline/models"
	"github.com/jinzhu/gorm"
	"github.com/rs/zerolog/log"
)

const (
	DefaultPassword = "password123"
	spread          = 30 * 24 * time.Hour
)

type sampleUser struct {
	Name  string
	Email string
}

type sampleArticle struct {
	Title       string
	Body        string
	Tags        []string
	AuthorEmail string
}

var users = []sampleUser{
	{Name: "Sarah Chen", Email: "sarah.chen@example.com"},
	{Name: "Marcus Rodriguez", Email: "marcus.rodriguez@example.com"},
	{Name: "Emma Thompson", Email: "emma.thompson@example.com"},
	{Name: "David Kim", Email: "david.kim@example.com"},
	{Name: "Lisa Park", Email: "lisa.park@example.com"},
}

var articles = []sampleArticle{
	{
		Title:       "The Future of Artificial Intelligence: What to Expect in 2024",
		Body:        "AI moved from research labs into everyday tools. Expect smaller specialised models, better multimodal assistants, and a lot more debate about regulation and trust.",
		Tags:        []string{"artificial intelligence", "technology", "future", "machine learning"},
		AuthorEmail: "sarah.chen@example.com",
	},
	{
		Title:       "Sustainable Living: Small Changes That Make a Big Impact",
		Body:        "You do not need solar panels to start. Cutting food waste, repairing instead of replacing, and choosing the train for short trips add up faster than most people think.",
		Tags:        []string{"sustainability", "environment", "climate change", "lifestyle"},
		AuthorEmail: "marcus.rodriguez@example.com",
	},
	{
		Title:       "The Art of Mindful Productivity: Working Smarter, Not Harder",
		Body:        "Productivity is attention management. Single-tasking, deliberate breaks and an honest look at where the day goes beat any new app.",
		Tags:        []string{"productivity", "mindfulness", "work-life balance", "personal development"},
		AuthorEmail: "emma.thompson@example.com",
	},
	{
		Title:       "The Psychology of Habit Formation: Building Lasting Change",
		Body:        "Habits run on cue, routine and reward. Make the cue obvious, the routine small and the reward immediate, and consistency follows.",
		Tags:        []string{"habits", "psychology", "personal development", "behavior change"},
		AuthorEmail: "david.kim@example.com",
	},
	{
		Title:       "Digital Nomad Life: Working from Anywhere in the World",
		Body:        "Reliable internet, overlapping time zones and a routine that survives new cities matter more than the beach in the photos.",
		Tags:        []string{"digital nomad", "remote work", "travel", "lifestyle"},
		AuthorEmail: "lisa.park@example.com",
	},
	{
		Title:       "The Science of Sleep: Why Quality Rest is Essential for Success",
		Body:        "Sleep consolidates memory and regulates mood. A fixed wake time, a dark room and less late caffeine do more than any supplement.",
		Tags:        []string{"sleep", "health", "wellness", "productivity"},
		AuthorEmail: "sarah.chen@example.com",
	},
	{
		Title:       "The Rise of Plant-Based Diets: Health, Environment, and Ethics",
		Body:        "Plant-based eating went mainstream. The health case is solid when meals are planned, and the footprint of a bean stew is hard to beat.",
		Tags:        []string{"nutrition", "plant-based", "health", "environment"},
		AuthorEmail: "marcus.rodriguez@example.com",
	},
	{
		Title:       "The Future of Remote Work: Lessons from the Pandemic",
		Body:        "Remote work proved itself, but only with written communication, clear ownership and offices redesigned for the days people do come in.",
		Tags:        []string{"remote work", "workplace", "pandemic", "future of work"},
		AuthorEmail: "emma.thompson@example.com",
	},
}

type Result struct {
	Users    int
	Articles int
}

// Run очищает пользователей, статьи, теги и комментарии и заливает демо-данные.
// Время создания статей разбрасывается по последним 30 дням от now
func Run(db *gorm.DB, hasher *auth.Hasher, rnd *rand.Rand, now time.Time) (Result, error) {
	var res Result

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{&models.Comment{}, &models.ArticleTag{}, &models.Article{}, &models.User{}} {
			if err := tx.Unscoped().Delete(m).Error; err != nil {
				return fmt.Errorf("could not clear table: %w", err)
			}
		}
		log.Info().Msg("cleared existing data")

		byEmail := make(map[string]uint, len(users))
		for _, u := range users {
			hash, err := hasher.Hash(DefaultPassword)
			if err != nil {
				return err
			}
			user := &models.User{Name: u.Name, Email: u.Email, Password: hash}
			if err := tx.Create(user).Error; err != nil {
				return fmt.Errorf("could not create user %s: %w", u.Email, err)
			}
			byEmail[u.Email] = user.ID
			res.Users++
			log.Info().Str("email", u.Email).Msg("created user")
		}

		for _, a := range articles {
			authorID, ok := byEmail[a.AuthorEmail]
			if !ok {
				continue
			}
			createdAt := now.Add(-time.Duration(rnd.Int63n(int64(spread))))
			article := &models.Article{
				Model:    gorm.Model{CreatedAt: createdAt, UpdatedAt: createdAt},
				Title:    a.Title,
				Body:     a.Body,
				AuthorID: authorID,
			}
			if err := tx.Set("gorm:save_associations", false).Create(article).Error; err != nil {
				return fmt.Errorf("could not create article: %w", err)
			}
			for i, name := range a.Tags {
				tag := &models.ArticleTag{ArticleID: article.ID, Name: name, Position: i}
				if err := tx.Create(tag).Error; err != nil {
					return fmt.Errorf("could not create tag: %w", err)
				}
			}
			res.Articles++
			log.Info().Str("title", a.Title).Msg("created article")
		}
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("seed failed: %w", err)
	}
	return res, nil
}
