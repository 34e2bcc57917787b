package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/pbta-bot-discord/internal/config"
	"github.com/KirkDiggler/pbta-bot-discord/internal/handlers/discord"
	"github.com/KirkDiggler/pbta-bot-discord/internal/members"
	"github.com/KirkDiggler/pbta-bot-discord/internal/repositories/experience"
	"github.com/KirkDiggler/pbta-bot-discord/internal/repositories/sheets"
	gamesvc "github.com/KirkDiggler/pbta-bot-discord/internal/services/game"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Bot Token: %s...%s", cfg.Discord.Token[:8], cfg.Discord.Token[len(cfg.Discord.Token)-4:])
	if cfg.Discord.GuildID != "" {
		log.Printf("Guild ID: %s", cfg.Discord.GuildID)
	}
	if cfg.Game.KeeperID != "" {
		log.Printf("Keeper ID: %s", cfg.Game.KeeperID)
	}

	// Create Discord session
	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}

	// Reading chat commands needs the message-content intent; nickname
	// resolution needs the member list
	dg.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent |
		discordgo.IntentsGuildMembers

	// Keep Redis client for cleanup
	var redisClient *redis.Client

	sheetRepo := sheets.NewInMemoryRepository()
	experienceRepo := experience.NewInMemoryRepository()

	log.Printf("Connecting to Redis at: %s", cfg.Redis.Addr)
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if pingErr := client.Ping(ctx).Err(); pingErr != nil {
		cancel()
		log.Printf("Failed to connect to Redis: %v", pingErr)
		log.Println("Falling back to in-memory repositories")
		if closeErr := client.Close(); closeErr != nil {
			log.Printf("Error closing Redis connection: %v", closeErr)
		}
	} else {
		cancel()
		log.Println("Successfully connected to Redis")

		redisClient = client
		sheetRepo = sheets.NewRedis(redisClient)
		experienceRepo = experience.NewRedis(redisClient)

		log.Println("Using Redis for persistence")
	}

	// Create game service
	svc := gamesvc.NewService(&gamesvc.ServiceConfig{
		SheetRepository:      sheetRepo,
		ExperienceRepository: experienceRepo,
		Members:              members.NewDiscordProvider(dg),
		KeeperID:             cfg.Game.KeeperID,
	})

	// Rewrite any pre-namespacing ledger keys before taking traffic
	if err := svc.MigrateLegacyKeys(context.Background()); err != nil {
		log.Fatalf("Failed to migrate legacy keys: %v", err)
	}

	// Create Discord handler
	handler := discord.NewHandler(&discord.HandlerConfig{
		Service: svc,
	})

	// Register message handler
	dg.AddHandler(handler.HandleMessageCreate)

	// Open connection to Discord
	err = dg.Open()
	if err != nil {
		log.Printf("Failed to open Discord connection: %v", err)
		return
	}
	defer func() {
		clientErr := dg.Close()
		if clientErr != nil {
			log.Printf("Failed to close Discord connection: %v", clientErr)
		}
	}()

	fmt.Println("Bot is now running. Press CTRL-C to exit.")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	fmt.Println("Shutting down...")

	// Clean up Redis connection if we have one
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		} else {
			log.Println("Closed Redis connection")
		}
	}
}
