package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. It is built once at process
// start and passed by value into constructors; business code never reads the
// environment directly.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	DBMaxConns     int    // pool ceiling for open and idle connections
	DBConnLifeMins int    // minutes before a pooled connection is recycled
	JWTSecret      string // symmetric key used to sign access tokens
	JWTIssuer      string // issuer claim stamped into and required from every token
	JWTAudience    string // audience claim stamped into and required from every token
	AccessTTLHours int    // access token time-to-live in hours
	RefreshTTLDays int    // refresh token time-to-live in days
	HashIterations int    // PBKDF2 iteration count for password digests

	// RefreshReuseRevokesAll switches on the stricter reuse policy: when a
	// revoked refresh token is presented again, every live token of that
	// user is revoked before the request fails.
	RefreshReuseRevokesAll bool
}

// Load reads configuration values from environment variables. Required
// variables are enforced by must() and missing values cause the program to
// exit with a fatal log message.
func Load() Config {
	return Config{
		Env:                    must("APP_ENV"),
		Port:                   must("APP_PORT"),
		DBUser:                 must("DB_USER"),
		DBPass:                 os.Getenv("DB_PASS"), // empty allowed
		DBHost:                 must("DB_HOST"),
		DBPort:                 must("DB_PORT"),
		DBName:                 must("DB_NAME"),
		DBMaxConns:             intOr("DB_MAX_CONNS", 20),
		DBConnLifeMins:         intOr("DB_CONN_LIFETIME_MINUTES", 15),
		JWTSecret:              must("JWT_SECRET"),
		JWTIssuer:              must("JWT_ISSUER"),
		JWTAudience:            must("JWT_AUDIENCE"),
		AccessTTLHours:         intOr("ACCESS_TOKEN_TTL_HOURS", 1),
		RefreshTTLDays:         intOr("REFRESH_TOKEN_TTL_DAYS", 21),
		HashIterations:         intOr("PASSWORD_HASH_ITERATIONS", 10000),
		RefreshReuseRevokesAll: getenv("REFRESH_REUSE_REVOKES_ALL", "false") == "true",
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// intOr converts an optional environment variable to an int, falling back to
// def when unset. An unparsable value is fatal.
func intOr(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
