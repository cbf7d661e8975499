package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cheapticket/config"
	"cheapticket/infras/otel/mocks"
	"cheapticket/shared/cache"
	cacheMocks "cheapticket/shared/cache/mocks"
	"cheapticket/shared/constant"
	"cheapticket/transport/http/middleware"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const limiterKey = "limiter:192.0.2.1:unknown"

func limited(t *testing.T, enable bool) (http.Handler, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = enable
	cfg.App.RateLimiter.MaxRequests = 3
	cfg.App.RateLimiter.WindowSeconds = 60

	app := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, redisCache, nil)

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return app.RateLimit()(ok), redisCache
}

func hitsSoFar(hits int) func(context.Context, string, any) error {
	return func(_ context.Context, _ string, value any) error {
		*(value.(*int)) = hits

		return nil
	}
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name      string
		enable    bool
		setup     func(redisCache *cacheMocks.MockRedisCache)
		code      int
		remaining string
	}{
		{
			name:   "disabled",
			enable: false,
			setup:  func(_ *cacheMocks.MockRedisCache) {},
			code:   http.StatusOK,
		},
		{
			name:   "first request opens a window",
			enable: true,
			setup: func(redisCache *cacheMocks.MockRedisCache) {
				redisCache.EXPECT().Get(gomock.Any(), limiterKey, gomock.Any()).Return(cache.Nil)
				redisCache.EXPECT().Save(gomock.Any(), limiterKey, 1, 60).Return(nil)
			},
			code:      http.StatusOK,
			remaining: "2",
		},
		{
			name:   "last allowed request",
			enable: true,
			setup: func(redisCache *cacheMocks.MockRedisCache) {
				redisCache.EXPECT().Get(gomock.Any(), limiterKey, gomock.Any()).DoAndReturn(hitsSoFar(2))
				redisCache.EXPECT().Save(gomock.Any(), limiterKey, 3, 60).Return(nil)
			},
			code:      http.StatusOK,
			remaining: "0",
		},
		{
			name:   "over the limit",
			enable: true,
			setup: func(redisCache *cacheMocks.MockRedisCache) {
				redisCache.EXPECT().Get(gomock.Any(), limiterKey, gomock.Any()).DoAndReturn(hitsSoFar(3))
			},
			code: http.StatusTooManyRequests,
		},
		{
			name:   "cache outage fails open",
			enable: true,
			setup: func(redisCache *cacheMocks.MockRedisCache) {
				redisCache.EXPECT().Get(gomock.Any(), limiterKey, gomock.Any()).Return(errors.New("redis down"))
			},
			code: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, redisCache := limited(t, tt.enable)
			tt.setup(redisCache)

			req := httptest.NewRequest(http.MethodPost, "/v1/send-otp", nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.remaining, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		})
	}
}
