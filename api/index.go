package handler

import (
	"net/http"
	"sync"

	"cheapticket/config"
	"cheapticket/di"
	"cheapticket/shared/logger"
)

var (
	once    sync.Once
	handler http.HandlerFunc
)

// Handler is the serverless entrypoint. The route tree is built on the first request.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		handler = di.InitializeService().Adaptor()
	})

	handler(w, r)
}
