package config

import (
	"errors"
	"fmt"
)

// MaxWebhookAttempts bounds webhook.max_attempts.
const MaxWebhookAttempts = 3

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Storage.DSN == "" {
			return errors.New("storage.dsn is required for the postgres driver")
		}
	case DriverMongo:
		if c.Storage.MongoURI == "" {
			return errors.New("storage.mongo_uri is required for the mongo driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		return errors.New("admin.password or admin.password_hash is required")
	}

	if c.Webhook.MaxAttempts < 1 || c.Webhook.MaxAttempts > MaxWebhookAttempts {
		return fmt.Errorf("webhook.max_attempts must be between 1 and %d, got %d", MaxWebhookAttempts, c.Webhook.MaxAttempts)
	}

	if c.Worker.Workers < 1 || c.Worker.QueueSize < 1 {
		return errors.New("worker.workers and worker.queue_size must be positive")
	}

	return nil
}

// AIReady reports whether the AI generator can run.
func (c *Config) AIReady() bool {
	return c.AI.Enabled && c.AI.APIKey != ""
}
