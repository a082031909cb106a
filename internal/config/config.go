package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
    "strings" // strings splits list-valued variables
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations
// and costs.  The stamp-location list is deployment configuration: the
// campaign decides which locations exist, the server only needs the count
// and the set of valid identifiers.
type Config struct {
    Env            string   // application environment (e.g. "dev", "prod")
    Port           string   // HTTP port to listen on
    DBUser         string   // database username
    DBPass         string   // database password (optional)
    DBHost         string   // database host address
    DBPort         string   // database port number
    DBName         string   // database name
    JWTSecret      string   // secret used to sign admin JWTs
    TokenTTLHours  int      // admin access token time-to-live in hours
    BcryptCost     int      // bcrypt cost for password hashing
    StampLocations []string // ordered stamp location identifiers
}

// TotalStamps returns how many distinct stamps a participant must collect
// before becoming eligible for the draw.
func (c Config) TotalStamps() int { return len(c.StampLocations) }

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
    return Config{
        Env:            must("APP_ENV"),      // environment (dev/test/prod)
        Port:           must("APP_PORT"),     // port to bind the HTTP server
        DBUser:         must("DB_USER"),      // database user
        DBPass:         os.Getenv("DB_PASS"), // database password (empty allowed)
        DBHost:         must("DB_HOST"),      // database host
        DBPort:         must("DB_PORT"),      // database port
        DBName:         must("DB_NAME"),      // database name
        JWTSecret:      must("JWT_SECRET"),   // secret used for signing admin JWTs
        TokenTTLHours:  intOr("ADMIN_TOKEN_TTL_HOURS", 12),
        BcryptCost:     intOr("BCRYPT_COST", 10),
        StampLocations: locations(os.Getenv("STAMP_LOCATIONS")),
    }
}

// locations parses a comma-separated list of stamp location IDs.  When the
// variable is unset the original campaign's four planets are used.
func locations(raw string) []string {
    if strings.TrimSpace(raw) == "" {
        return []string{"sun", "mercury", "venus", "earth"}
    }
    var out []string
    for _, p := range strings.Split(raw, ",") {
        p = strings.TrimSpace(p)
        if p != "" {
            out = append(out, p)
        }
    }
    if len(out) == 0 {
        log.Fatalf("STAMP_LOCATIONS contains no usable entries: %q", raw)
    }
    return out
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// intOr converts an optional environment variable into an integer, falling
// back to the provided default when unset.  Invalid values are fatal.
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
