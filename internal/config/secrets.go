package config

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/option"
)

// ResolveSecrets fills in config values that are sourced from GCP Secret
// Manager rather than the environment. Currently that is only the DB
// connection string; an explicit DB_CONNECTION_STRING always wins.
func ResolveSecrets(ctx context.Context, cfg *Config) error {
	if cfg.DBConnectionString != "" || cfg.DBConnectionStringSecret == "" {
		return nil
	}

	var opts []option.ClientOption
	if cfg.GCPCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.GCPCredentialsFile))
	}
	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to create Secret Manager client: %w", err)
	}
	defer client.Close()

	name := cfg.DBConnectionStringSecret
	if !strings.Contains(name, "/versions/") {
		name += "/versions/latest"
	}
	result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return fmt.Errorf("failed to access secret %s: %w", name, err)
	}
	cfg.DBConnectionString = strings.TrimSpace(string(result.Payload.Data))
	return nil
}
