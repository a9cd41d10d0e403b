package main

import (
	"encoding/json"
	"log"
	"time"

	"github.com/heartlink/internal/config"
	"github.com/heartlink/internal/constants"
	"github.com/heartlink/internal/logger"
	"github.com/heartlink/internal/models"
	"github.com/heartlink/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

type seedUser struct {
	Email       string
	DisplayName string
	Age         int
	Bio         string
	Location    string
	Interests   []string
	Photos      []string
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	users := []seedUser{
		{
			Email:       "alice@example.com",
			DisplayName: "Alice",
			Age:         27,
			Bio:         "Coffee lover, amateur climber, always planning the next trip.",
			Location:    "Berlin",
			Interests:   []string{"climbing", "travel", "coffee"},
			Photos: []string{
				"https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=800",
				"https://images.unsplash.com/photo-1517841905240-472988babdf9?w=800",
			},
		},
		{
			Email:       "bob@example.com",
			DisplayName: "Bob",
			Age:         30,
			Bio:         "Guitarist and weekend chef.",
			Location:    "Hamburg",
			Interests:   []string{"music", "cooking"},
			Photos: []string{
				"https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=800",
				"https://images.unsplash.com/photo-1506794778202-cad84cf45f1d?w=800",
			},
		},
		{
			Email:       "carol@example.com",
			DisplayName: "Carol",
			Age:         25,
			Bio:         "Bookworm. Ask me about my dog.",
			Location:    "Berlin",
			Interests:   []string{"books", "dogs", "hiking"},
			Photos: []string{
				"https://images.unsplash.com/photo-1534528741775-53994a69daeb?w=800",
				"https://images.unsplash.com/photo-1524504388940-b1c1722653e1?w=800",
			},
		},
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte("Seeduser1!"), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Fatalf("Failed to hash seed password: %v", err)
	}

	for _, su := range users {
		var existing models.User
		if err := models.DB.Where("email = ?", su.Email).First(&existing).Error; err == nil {
			stdLog.Printf("User already exists: %s", su.Email)
			continue
		}

		interestsJSON, err := json.Marshal(su.Interests)
		if err != nil {
			stdLog.Printf("Failed to marshal interests for %s: %v", su.Email, err)
			continue
		}

		now := time.Now()
		user := models.User{
			Email:           su.Email,
			PasswordHash:    string(passwordHash),
			EmailVerified:   true,
			DisplayName:     su.DisplayName,
			Age:             su.Age,
			Bio:             su.Bio,
			Location:        su.Location,
			Interests:       datatypes.JSON(interestsJSON),
			ProfileComplete: len(su.Photos) >= 2,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create user %s: %v", su.Email, err)
			continue
		}
		for i, url := range su.Photos {
			photo := models.ProfilePhoto{
				UserID:   user.ID,
				URL:      url,
				Position: i + 1,
			}
			if err := models.DB.Create(&photo).Error; err != nil {
				stdLog.Printf("Failed to create photo for %s: %v", su.Email, err)
			}
		}
		stdLog.Printf("Created user: %s", su.Email)
	}

	seedSwipes(stdLog)
}

// seedSwipes 预置几条滑动与一对互滑配对，方便本地联调
func seedSwipes(stdLog *log.Logger) {
	userIDByEmail := func(email string) uint {
		var user models.User
		if err := models.DB.Where("email = ?", email).First(&user).Error; err != nil {
			return 0
		}
		return user.ID
	}
	alice := userIDByEmail("alice@example.com")
	bob := userIDByEmail("bob@example.com")
	carol := userIDByEmail("carol@example.com")
	if alice == 0 || bob == 0 || carol == 0 {
		stdLog.Printf("Skipping swipe seed: users missing")
		return
	}

	swipeRepo := repository.NewSwipeRepository(models.DB)
	pairs := []struct {
		swiper, swiped uint
		direction      string
	}{
		{alice, bob, constants.SwipeDirectionRight},
		{bob, alice, constants.SwipeDirectionRight},
		{carol, alice, constants.SwipeDirectionRight},
		{carol, bob, constants.SwipeDirectionLeft},
	}
	for _, p := range pairs {
		if err := swipeRepo.Upsert(p.swiper, p.swiped, p.direction); err != nil {
			stdLog.Printf("Failed to seed swipe %d->%d: %v", p.swiper, p.swiped, err)
		}
	}

	match, err := repository.NewMatchRepository(models.DB).CreateIfAbsent(alice, bob)
	if err != nil {
		stdLog.Printf("Failed to seed match: %v", err)
		return
	}
	stdLog.Printf("Seeded match %d between alice and bob", match.ID)
}
