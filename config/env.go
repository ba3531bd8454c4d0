package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

const (
	defaultMongoURI      = "mongodb://localhost:27017"
	defaultMongoDB       = "boutique"
	defaultRedisAddr     = "localhost:6379"
	defaultJWTSecret     = "change-me-in-production"
	defaultAppPort       = "5000"
	defaultAppEnv        = "local"
	defaultCORSOrigins   = "http://localhost:3000"
	defaultRatePerMinute = "200"
	defaultPoolSize      = "8"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load reads config/app.json and .env once. Process environment variables
// always win over both files.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_ENV":               defaultAppEnv,
		"APP_PORT":              defaultAppPort,
		"GRPC_PORT":             "",
		"MONGO_URI":             defaultMongoURI,
		"MONGO_DB":              defaultMongoDB,
		"REDIS_ADDR":            defaultRedisAddr,
		"REDIS_PASSWORD":        "",
		"JWT_SECRET":            defaultJWTSecret,
		"CORS_ORIGINS":          defaultCORSOrigins,
		"RATE_LIMIT_PER_MINUTE": defaultRatePerMinute,
		"LINKAGE_ASYNC":         "false",
		"WORKER_POOL_SIZE":      defaultPoolSize,
		"LOG_TO_MONGO":          "false",
		"MAX_BODY_BYTES":        "",
	}
}

func AppEnv() string  { _ = Load(); return get("APP_ENV", defaultAppEnv) }
func AppPort() string { _ = Load(); return get("APP_PORT", defaultAppPort) }

// GRPCPort is empty unless the gRPC health server should be started.
func GRPCPort() string { _ = Load(); return get("GRPC_PORT", "") }

func MongoURI() string      { _ = Load(); return get("MONGO_URI", defaultMongoURI) }
func MongoDB() string       { _ = Load(); return get("MONGO_DB", defaultMongoDB) }
func RedisAddr() string     { _ = Load(); return get("REDIS_ADDR", defaultRedisAddr) }
func RedisPassword() string { _ = Load(); return get("REDIS_PASSWORD", "") }
func JWTSecret() string     { _ = Load(); return get("JWT_SECRET", defaultJWTSecret) }

// CORSOrigins returns the allowed origins. Entries may contain a single "*"
// wildcard, e.g. "https://*.vercel.app".
func CORSOrigins() []string {
	_ = Load()
	raw := get("CORS_ORIGINS", defaultCORSOrigins)
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func RateLimitPerMinute() int { _ = Load(); return getInt("RATE_LIMIT_PER_MINUTE", 200) }
func WorkerPoolSize() int     { _ = Load(); return getInt("WORKER_POOL_SIZE", 8) }
func LinkageAsync() bool      { _ = Load(); return getBool("LINKAGE_ASYNC") }
func LogToMongo() bool        { _ = Load(); return getBool("LOG_TO_MONGO") }

// MaxBodyBytes caps JSON request bodies.
func MaxBodyBytes(fallback int) int { _ = Load(); return getInt("MAX_BODY_BYTES", fallback) }

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil && !os.IsNotExist(err) {
		return err
	}

	if err := mergeDotEnv(envPath, loaded); err != nil && !os.IsNotExist(err) {
		return err
	}

	for key := range loaded {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			loaded[key] = strings.TrimSpace(v)
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		switch v := val.(type) {
		case string:
			out[k] = strings.TrimSpace(v)
		case bool, float64:
			out[k] = fmt.Sprint(v)
		}
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	env, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	for key, value := range env {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(value)
	}
	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(get(key, ""))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getBool(key string) bool {
	switch strings.ToLower(get(key, "")) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

// Get reads any config key by name with an optional fallback.
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}

// Set overrides a key at runtime. Intended for tests and CLI flags.
func Set(key, value string) {
	_ = Load()
	mu.Lock()
	values[strings.ToUpper(key)] = value
	mu.Unlock()
}
