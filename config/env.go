package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

const (
	defaultAppPort      = "8080"
	defaultAppEnv       = "local"
	defaultMongoURI     = "mongodb://localhost:27017"
	defaultMongoDB      = "dukaan"
	defaultRedisAddr    = "localhost:6379"
	defaultBcryptCost   = 10
	defaultStaticDir    = "web"
	defaultUserCacheTTL = 300 // seconds
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load reads config/app.json and .env once and merges them over the
// built-in defaults. Safe to call from every accessor.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_PORT":       defaultAppPort,
		"APP_ENV":        defaultAppEnv,
		"MONGO_URI":      defaultMongoURI,
		"MONGO_DB":       defaultMongoDB,
		"MONGO_LOG":      "false",
		"REDIS_ADDR":     defaultRedisAddr,
		"REDIS_PASSWORD": "",
		"BCRYPT_COST":    strconv.Itoa(defaultBcryptCost),
		"STATIC_DIR":     defaultStaticDir,
		"USER_CACHE_TTL": strconv.Itoa(defaultUserCacheTTL),
	}
}

func AppPort() string {
	_ = Load()
	return get("APP_PORT", defaultAppPort)
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

func MongoURI() string {
	_ = Load()
	return get("MONGO_URI", defaultMongoURI)
}

func MongoDatabase() string {
	_ = Load()
	return get("MONGO_DB", defaultMongoDB)
}

// MongoLogEnabled reports whether request logs should also be persisted
// into the Mongo "logs" collection.
func MongoLogEnabled() bool {
	_ = Load()
	switch strings.ToLower(get("MONGO_LOG", "false")) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func RedisAddr() string {
	_ = Load()
	return get("REDIS_ADDR", defaultRedisAddr)
}

func RedisPassword() string {
	_ = Load()
	return get("REDIS_PASSWORD", "")
}

// BcryptCost returns the bcrypt cost factor used for password hashing.
// Out-of-range values fall back to the default.
func BcryptCost() int {
	_ = Load()
	n, err := strconv.Atoi(get("BCRYPT_COST", strconv.Itoa(defaultBcryptCost)))
	if err != nil || n < 4 || n > 31 {
		return defaultBcryptCost
	}
	return n
}

// StaticDir returns the directory the frontend assets are served from.
func StaticDir() string {
	_ = Load()
	return get("STATIC_DIR", defaultStaticDir)
}

// UserCacheTTLSeconds is how long a user profile may live in the cache.
func UserCacheTTLSeconds() int {
	_ = Load()
	n, err := strconv.Atoi(get("USER_CACHE_TTL", strconv.Itoa(defaultUserCacheTTL)))
	if err != nil || n <= 0 {
		return defaultUserCacheTTL
	}
	return n
}

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
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
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
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

// Get reads any config key by name with an optional fallback.
// Keys from .env and config/app.json are available after Load().
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}
