package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/testhelpers"
)

func limitedRouter(rl *RateLimiter) *gin.Engine {
	router := gin.New()
	router.POST("/recipes", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return router
}

func post(router *gin.Engine) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/recipes", nil))
	return rr
}

func TestRateLimiterFailsOpenWhenRedisIsDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	rr := post(limitedRouter(NewRecipeCreationRateLimiter(client, 1, logger.NewNop())))
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "rate limit check failed", rr.Header().Get("X-RateLimit-Error"))
}

func TestRateLimiter(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: testhelpers.StartRedis(t)})
	defer client.Close()

	rl := NewRecipeCreationRateLimiter(client, 2, logger.NewNop())
	router := limitedRouter(rl)

	assert.Equal(t, http.StatusCreated, post(router).Code)
	rr := post(router)
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "0", rr.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusTooManyRequests, post(router).Code)

	other := httptest.NewRequest(http.MethodPost, "/recipes", nil)
	other.RemoteAddr = "203.0.113.9:4321"
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, other)
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("X-RateLimit-Remaining"))

	allowed, remaining, _, err := rl.IsAllowed(context.Background(), "192.0.2.1")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
}
