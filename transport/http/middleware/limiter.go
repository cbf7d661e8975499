package middleware

import (
	"errors"
	"net"
	"net/http"
	"strconv"

	"cheapticket/shared"
	"cheapticket/shared/cache"
	"cheapticket/shared/constant"
	"cheapticket/transport/http/response"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"
	unknownUserAgent  = "unknown"
)

// RateLimit is a fixed-window counter per client address and user agent.
// Cache outages fail open.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	limit := a.config.App.RateLimiter.MaxRequests
	window := a.config.App.RateLimiter.WindowSeconds

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.config.App.RateLimiter.Enable {
				next.ServeHTTP(w, r)

				return
			}

			ctx := r.Context()
			key := shared.BuildCacheKey(cacheKeyRateLimit, clientIP(r), userAgent(r))

			var hits int
			if err := a.cache.Get(ctx, key, &hits); err != nil && !errors.Is(err, cache.Nil) {
				log.Warn().Err(err).Str("key", key).Msg("rate limiter cache unavailable")
				next.ServeHTTP(w, r)

				return
			}

			hits++

			if hits > limit {
				response.WithRequestLimitExceeded(w)

				return
			}

			if err := a.cache.Save(ctx, key, hits, window); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("rate limiter failed to store hit")
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limit))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(limit-hits))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(window))

			next.ServeHTTP(w, r)
		})
	}
}

func userAgent(r *http.Request) string {
	if ua := r.Header.Get(constant.RequestHeaderUserAgent); ua != "" {
		return ua
	}

	return unknownUserAgent
}

// clientIP is the remote host without its port. chi's RealIP middleware has
// already folded X-Forwarded-For and X-Real-IP into RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
