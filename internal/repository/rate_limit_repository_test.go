package repository_test

import (
	"testing"
	"time"

	"psytech/internal/repository"
	redisapp "psytech/internal/storage/redis"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func NewMockClient() (*redisapp.Client, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	return &redisapp.Client{Client: db}, mock
}

func TestRedisRateLimiter_Allow(t *testing.T) {
	window := time.Minute
	key := "rate_limit:contact:10.0.0.1"

	tests := []struct {
		name    string
		created bool
		count   int64
		want    bool
	}{
		{name: "first hit opens the window", created: true, count: 1, want: true},
		{name: "within limit", count: 2, want: true},
		{name: "over limit", count: 3, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mock := NewMockClient()
			limiter := repository.NewRedisRateLimiter(client, 2, window)

			// the TTL is set atomically with the increment
			mock.ExpectTxPipeline()
			mock.ExpectSetNX(key, 0, window).SetVal(tt.created)
			mock.ExpectIncr(key).SetVal(tt.count)
			mock.ExpectTxPipelineExec()

			ok, err := limiter.Allow(testCtx, "contact:10.0.0.1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("redis error", func(t *testing.T) {
		client, _ := NewMockClient()
		limiter := repository.NewRedisRateLimiter(client, 2, window)

		_, err := limiter.Allow(testCtx, "contact:10.0.0.1")
		assert.Error(t, err)
	})
}
