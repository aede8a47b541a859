package config // package config loads application configuration from environment variables

import (
	"log"     // log reports configuration errors and halts execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"strings" // strings splits comma-separated values
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations
// and costs, and the upload policy fields that fix which resume files the
// submission flow will accept for this deployment.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing

	UploadURL    string // blob host raw-upload endpoint (e.g. https://api.cloudinary.com/v1_1/<cloud>/raw/upload)
	UploadPreset string // unsigned upload preset sent with every upload
	UploadFolder string // remote folder resumes are stored under
	UploadHost   string // delivery host prefix trusted for stored resume URLs

	ResumeTypes    []string // MIME allow-list for resume attachments
	ResumeMaxBytes int64    // resume size ceiling in bytes
	ResumeRequired bool     // whether an application without a resume is rejected
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  The resume policy
// defaults match the reference deployment: PDF only, 2MB ceiling, resume
// optional.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),

		UploadURL:    must("UPLOAD_URL"),
		UploadPreset: must("UPLOAD_PRESET"),
		UploadFolder: getenv("UPLOAD_FOLDER", "resumes"),
		UploadHost:   getenv("UPLOAD_TRUSTED_HOST", "https://res.cloudinary.com/"),

		ResumeTypes:    parseList(getenv("RESUME_ALLOWED_TYPES", "application/pdf")),
		ResumeMaxBytes: int64(envInt("RESUME_MAX_BYTES", 2*1024*1024)),
		ResumeRequired: envBool("RESUME_REQUIRED", false),
	}
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

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// parseList splits a comma-separated env value into trimmed, non-empty items.
func parseList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
