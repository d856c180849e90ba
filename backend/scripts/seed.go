package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"lovemining/backend/internal/auth"
	"lovemining/backend/internal/graph"
	"lovemining/backend/internal/interest"
	"lovemining/backend/internal/profile"
	"lovemining/backend/internal/user"
	"lovemining/backend/pkg/config"
	"lovemining/backend/pkg/logger"
)

var (
	cities = [][2]string{
		{"san francisco", "california"},
		{"oakland", "california"},
		{"portland", "oregon"},
		{"seattle", "washington"},
		{"austin", "texas"},
	}
	sexes        = []string{"m", "f"}
	orientations = []string{"straight", "gay", "bisexual"}
	essays       = []string{
		"I spend my weekends hiking and taking photos, and I never say no to good coffee.",
		"Big fan of cooking, wine tasting and long novels.",
		"Mostly at the gym or out running, but I also love movies and board games.",
		"Guitar, concerts and travel. Looking for someone to explore the city with.",
		"Dog person, yoga in the morning, salsa dancing at night.",
	}
)

func main() {
	count := flag.Int("users", 50, "Number of demo users to register")
	likes := flag.Int("likes", 120, "Number of random like actions to issue")
	flag.Parse()

	// Initialize logger
	if err := logger.Init("development"); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting database seeding...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to create MongoDB client", zap.Error(err))
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(err))
	}
	defer driver.Close(context.Background())

	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Fatal("Failed to verify Neo4j connectivity", zap.Error(err))
	}

	extractor, err := interest.NewExtractor(cfg.InterestsCSVPath)
	if err != nil {
		log.Fatal("Failed to load interest dictionary", zap.Error(err))
	}

	db := mongoClient.Database(cfg.MongoDatabase)
	service := user.NewService(
		profile.NewRepository(db),
		profile.NewReviewRepository(db),
		graph.NewRepository(driver),
		extractor,
		auth.NewHasher(cfg.BcryptCost),
	)

	// Register users concurrently; every registration runs the full
	// cross-store orchestration, so this also exercises the idempotent
	// city/state/interest node creation under contention.
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	inputs := make([]user.RegisterInput, *count)
	for i := range inputs {
		location := cities[rng.Intn(len(cities))]
		inputs[i] = user.RegisterInput{
			Email:       fmt.Sprintf("demo-%s@example.com", uuid.New().String()[:8]),
			Password:    "demo-password",
			Age:         18 + rng.Intn(50),
			Sex:         sexes[rng.Intn(len(sexes))],
			Orientation: orientations[rng.Intn(len(orientations))],
			Status:      "single",
			City:        location[0],
			State:       location[1],
			Essay:       essays[rng.Intn(len(essays))],
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	ids := make([]string, len(inputs))
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			p, err := service.Register(gctx, input)
			if err != nil {
				return fmt.Errorf("failed to register %s: %w", input.Email, err)
			}
			ids[i] = p.ID
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("Seeding aborted", zap.Error(err))
		os.Exit(1)
	}

	log.Info("Demo users registered", zap.Int("count", len(ids)))

	// Random likes; reciprocal ones resolve into matches.
	var matched int
	for i := 0; i < *likes; i++ {
		actor := ids[rng.Intn(len(ids))]
		target := ids[rng.Intn(len(ids))]
		if actor == target {
			continue
		}
		outcome, err := service.Like(ctx, actor, target)
		if err != nil {
			log.Warn("Like failed during seeding", zap.Error(err))
			continue
		}
		if outcome == user.OutcomeMatch {
			matched++
		}
	}

	log.Info("Seeding complete",
		zap.Int("users", len(ids)),
		zap.Int("likes_issued", *likes),
		zap.Int("matches", matched),
	)
}
