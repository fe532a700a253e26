package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// readDotEnv returns the variables of a .env file, or nothing when the file
// does not exist.
func readDotEnv(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return vars, nil
}

// envLookup looks a variable up in the process environment first, then in
// dotenv.
func envLookup(dotenv map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
}

// parseEnv overlays cfg with BILLED_* variables. Durations use Go syntax
// ("15m", "24h").
func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	strs := []struct {
		key string
		dst *string
	}{
		{"BILLED_GRPC_ADDR", &cfg.EndpointAddrGRPC},
		{"BILLED_METRICS_ADDR", &cfg.MetricsAddr},
		{"BILLED_DATABASE_DSN", &cfg.DatabaseDSN},
		{"BILLED_SECRET_KEY", &cfg.SecretKey},
		{"BILLED_S3_USER", &cfg.S3RootUser},
		{"BILLED_S3_PASSWORD", &cfg.S3RootPassword},
		{"BILLED_S3_BUCKET", &cfg.S3Bucket},
		{"BILLED_S3_REGION", &cfg.S3Region},
		{"BILLED_S3_ENDPOINT", &cfg.S3BaseEndpoint},
		{"BILLED_LOG_LEVEL", &cfg.LogLevel},
	}
	for _, s := range strs {
		if v, ok := lookup(s.key); ok {
			*s.dst = v
		}
	}

	if v, ok := lookup("BILLED_ADMIN_EMAILS"); ok {
		cfg.AdminEmails = splitList(v)
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"BILLED_ACCESS_TOKEN_TTL", &cfg.AccessTokenValidityDuration},
		{"BILLED_PRESIGN_TTL", &cfg.PresignTTL},
	}
	for _, d := range durations {
		v, ok := lookup(d.key)
		if !ok {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", d.key, err)
		}
		*d.dst = parsed
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
