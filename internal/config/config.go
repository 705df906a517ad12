package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`

	// DBConnectionString may be left empty when DBConnectionStringSecret
	// names a Secret Manager secret holding the DSN (see secrets.go).
	DBConnectionString       string `envconfig:"DB_CONNECTION_STRING"`
	DBConnectionStringSecret string `envconfig:"DB_CONNECTION_STRING_SECRET"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	// Object storage for course images (S3 or an S3-compatible service).
	S3URL       string `envconfig:"S3_URL"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"course-assets"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY"`

	// Course lifecycle events. Publishing is disabled when the project ID
	// is empty.
	GCPProjectID       string `envconfig:"GCP_PROJECT_ID"`
	GCPCredentialsFile string `envconfig:"GCP_CREDENTIALS_FILE"`
	CourseEventsTopic  string `envconfig:"COURSE_EVENTS_TOPIC" default:"course-events"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
