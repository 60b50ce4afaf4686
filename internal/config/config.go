package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/kacper-wojtaszczyk/jackfruit/staging-go/internal/adapters/script"
)

// Config holds slurp configuration.
type Config struct {
	// DestScript maps a staged file URI to its destination URI (e.g. pathdater).
	DestScript string
	// StageScript optionally renames the local file first (e.g. filestager).
	StageScript   string
	ScriptTimeout time.Duration

	// Verify enables CRC-32 comparison before the final move.
	Verify bool
	// CompleteDir and ErrorDir receive the local file after success/failure.
	CompleteDir string
	ErrorDir    string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool
}

type ErrMissingRequiredEnvVar struct {
	Name string
}

func (e *ErrMissingRequiredEnvVar) Error() string {
	return fmt.Sprintf("required environment variable %q is not set", e.Name)
}

type ErrInvalidEnvVar struct {
	Name  string
	Value string
	Err   error
}

func (e *ErrInvalidEnvVar) Error() string {
	return fmt.Sprintf("environment variable %q has invalid value %q: %v", e.Name, e.Value, e.Err)
}

func (e *ErrInvalidEnvVar) Unwrap() error {
	return e.Err
}

// Load reads configuration from environment variables.
// Returns an error if required variables are missing or malformed.
func Load() (*Config, error) {
	config := Config{
		StageScript:   os.Getenv("STAGE_SCRIPT"),
		ScriptTimeout: script.DefaultTimeout,
		CompleteDir:   os.Getenv("COMPLETE_DIR"),
		ErrorDir:      os.Getenv("ERROR_DIR"),
	}

	required := []struct {
		name string
		dst  *string
	}{
		{"DEST_SCRIPT", &config.DestScript},
		{"MINIO_ENDPOINT", &config.MinIOEndpoint},
		{"MINIO_ACCESS_KEY", &config.MinIOAccessKey},
		{"MINIO_SECRET_KEY", &config.MinIOSecretKey},
		{"MINIO_BUCKET", &config.MinIOBucket},
	}
	for _, r := range required {
		*r.dst = os.Getenv(r.name)
		if *r.dst == "" {
			return nil, &ErrMissingRequiredEnvVar{Name: r.name}
		}
	}

	if v := os.Getenv("SCRIPT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, &ErrInvalidEnvVar{Name: "SCRIPT_TIMEOUT", Value: v, Err: err}
		}
		if d <= 0 {
			return nil, &ErrInvalidEnvVar{Name: "SCRIPT_TIMEOUT", Value: v, Err: fmt.Errorf("must be positive")}
		}
		config.ScriptTimeout = d
	}

	for _, f := range []struct {
		name string
		dst  *bool
	}{
		{"MINIO_USE_SSL", &config.MinIOUseSSL},
		{"VERIFY", &config.Verify},
	} {
		v := os.Getenv(f.name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, &ErrInvalidEnvVar{Name: f.name, Value: v, Err: err}
		}
		*f.dst = b
	}

	for _, d := range []struct {
		name string
		dir  string
	}{
		{"COMPLETE_DIR", config.CompleteDir},
		{"ERROR_DIR", config.ErrorDir},
	} {
		if d.dir == "" {
			continue
		}
		info, err := os.Stat(d.dir)
		if err != nil {
			return nil, &ErrInvalidEnvVar{Name: d.name, Value: d.dir, Err: err}
		}
		if !info.IsDir() {
			return nil, &ErrInvalidEnvVar{Name: d.name, Value: d.dir, Err: fmt.Errorf("not a directory")}
		}
	}

	return &config, nil
}
