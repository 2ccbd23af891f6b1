package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-mouse/api"
	api_i "github.com/beka-birhanu/vinom-mouse/api/i"
	"github.com/beka-birhanu/vinom-mouse/api/identity"
	sessionapi "github.com/beka-birhanu/vinom-mouse/api/session"
	"github.com/beka-birhanu/vinom-mouse/config"
	"github.com/beka-birhanu/vinom-mouse/infrastruture/metrics"
	"github.com/beka-birhanu/vinom-mouse/infrastruture/repo"
	"github.com/beka-birhanu/vinom-mouse/infrastruture/sortedstorage"
	"github.com/beka-birhanu/vinom-mouse/infrastruture/token"
	"github.com/beka-birhanu/vinom-mouse/service"
	"github.com/beka-birhanu/vinom-mouse/service/i"
	"github.com/beka-birhanu/vinom-mouse/strategy"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const scoreboardTTLSeconds = 7 * 24 * 60 * 60

var warmup bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve recorded sessions, journeys and the scoreboard over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&warmup, "warmup", true, "record one session per algorithm on a generated maze at startup")
	rootCmd.AddCommand(serveCmd)
}

// Dependencies of the server
var (
	mongoClient  *mongo.Client
	redisClient  *redis.Client
	sessionRepo  i.SessionRepo
	scoreboard   i.Scoreboard
	jwtTokenizer i.Tokenizer
	recorder     *metrics.Prometheus
	router       *api.Router
	storeLogger  i.Logger
	httpLogger   i.Logger
)

func initSessionRepo(ctx context.Context) error {
	if config.Envs.DBURI == "" {
		sessionRepo = repo.NewMemorySessionRepo()
		storeLogger.Warning("DB_URI not set, sessions are kept in memory")
		return nil
	}

	var err error
	mongoClient, err = mongo.Connect(ctx, options.Client().ApplyURI(config.Envs.DBURI))
	if err != nil {
		return fmt.Errorf("connecting to MongoDB: %w", err)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		return fmt.Errorf("MongoDB ping failed: %w", err)
	}
	sessionRepo = repo.NewSessionRepo(mongoClient, config.Envs.DBName, "sessions")
	storeLogger.Info("Connected to MongoDB")
	return nil
}

func initScoreboard(ctx context.Context) error {
	if config.Envs.RedisAddr == "" {
		scoreboard = sortedstorage.NewMemoryScoreboard()
		storeLogger.Warning("REDIS_ADDR not set, the scoreboard is kept in memory")
		return nil
	}

	redisClient = redis.NewClient(&redis.Options{Addr: config.Envs.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	var err error
	scoreboard, err = sortedstorage.NewRedisScoreboard(redisClient, scoreboardTTLSeconds)
	if err != nil {
		return err
	}
	storeLogger.Info("Connected to Redis")
	return nil
}

func initJWTTokenizer() error {
	if config.Envs.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set to serve the protected routes")
	}
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	return nil
}

func initRouter() error {
	sessionController, err := sessionapi.NewSessionController(sessionRepo, scoreboard)
	if err != nil {
		return err
	}

	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{sessionController},
		AuthorizationMiddleware: identity.Authorize(jwtTokenizer, identity.ScopeJourney),
		MetricsHandler:          promhttp.Handler(),
	})
	httpLogger.Info(fmt.Sprintf("Router initialized, listening on %s:%d", config.Envs.HostIP, config.Envs.RESTPort))
	return nil
}

// runWarmup records one session per algorithm, concurrently with the server.
func runWarmup(ctx context.Context) {
	m, seed, err := buildMaze(config.Envs.MazeDim, config.Envs.Seed, config.Envs.MazeFile)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Building warm-up maze: %v", err))
		return
	}

	simLogger := newLogger("SIMULATION", config.ColorCyan)
	for _, algorithm := range strategy.Names() {
		err := runOnce(ctx, &service.Config{
			Maze:       m,
			Algorithm:  algorithm,
			Heuristic:  config.Envs.Heuristic,
			Seed:       seed,
			MaxTicks:   config.Envs.MaxTicks,
			MaxRuns:    config.Envs.MaxRuns,
			Sessions:   sessionRepo,
			Scoreboard: scoreboard,
			Metrics:    recorder,
			Logger:     simLogger,
		})
		if err != nil {
			appLogger.Warning(fmt.Sprintf("Warm-up %s: %v", algorithm, err))
		}
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	storeLogger = newLogger("STORE", config.ColorMagenta)
	httpLogger = newLogger("HTTP", config.ColorBlue)

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	if err := initSessionRepo(ctx); err != nil {
		return err
	}
	defer func() {
		if mongoClient != nil {
			_ = mongoClient.Disconnect(context.Background())
		}
	}()

	if err := initScoreboard(ctx); err != nil {
		return err
	}
	defer func() {
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}()

	if err := initJWTTokenizer(); err != nil {
		return err
	}
	appLogger.Info("JWT Tokenizer initialized")
	recorder = metrics.New(prometheus.DefaultRegisterer)
	if err := initRouter(); err != nil {
		return err
	}

	if warmup {
		go runWarmup(cmd.Context())
	}

	if err := router.Run(); err != nil {
		httpLogger.Error(fmt.Sprintf("Starting server: %v", err))
		return err
	}
	return nil
}
