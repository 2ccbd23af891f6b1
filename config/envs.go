package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	MazeDim   int    // Side length of generated mazes
	Algorithm string // Strategy registry name
	Heuristic string // Best-first heuristic name
	MaxTicks  int    // Tick budget of one simulation
	MaxRuns   int    // Runs per simulation, exploration included
	Seed      int64  // Maze generator seed, 0 picks one from the clock
	MazeFile  string // Optional layout file replacing the generated maze
	HostIP    string // Host IP for the server
	RESTPort  int    // Port for the REST API
	GinMode   string // Mode for the Gin framework (e.g., release, debug, test)
	DBURI     string // MongoDB connection string, empty keeps sessions in memory
	DBName    string // Name of the database
	RedisAddr string // Redis address of the scoreboard, empty keeps it in memory
	JWTSecret string // Secret key for JWT signing
	JWTIssuer string // Issuer claim for JWTs
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		MazeDim:   getEnvAsIntWithDefault("MOUSE_MAZE_DIM", 16),
		Algorithm: getEnvWithDefault("MOUSE_ALGORITHM", "floodfill"),
		Heuristic: getEnvWithDefault("MOUSE_HEURISTIC", "manhattan"),
		MaxTicks:  getEnvAsIntWithDefault("MOUSE_MAX_TICKS", 10000),
		MaxRuns:   getEnvAsIntWithDefault("MOUSE_MAX_RUNS", 2),
		Seed:      int64(getEnvAsIntWithDefault("MOUSE_SEED", 0)),
		MazeFile:  getEnvWithDefault("MOUSE_MAZE_FILE", ""),
		HostIP:    getEnvWithDefault("HOST_IP", "127.0.0.1"),
		RESTPort:  getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:   getEnvWithDefault("GIN_MODE", "release"),
		DBURI:     getEnvWithDefault("DB_URI", ""),
		DBName:    getEnvWithDefault("DB_NAME", "vinom_mouse"),
		RedisAddr: getEnvWithDefault("REDIS_ADDR", ""),
		JWTSecret: getEnvWithDefault("JWT_SECRET", ""),
		JWTIssuer: getEnvWithDefault("JWT_ISSUER", "vinom-mouse"),
	}
}

// getEnvAsIntWithDefault retrieves the value of an environment variable as an integer,
// or returns a default value if not set. A value that cannot be parsed is fatal.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
