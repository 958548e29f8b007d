package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/reqid"
	"github.com/rs/zerolog/log"
)

const RequestIDHeader = "X-Request-ID"

// RequestID propagates the caller's X-Request-ID or assigns a new one, and
// stores it in the request context.
func RequestID(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	id := req.HeaderParameter(RequestIDHeader)
	if id == "" || len(id) > 64 {
		id = reqid.New()
	}

	req.Request = req.Request.WithContext(reqid.WithContext(req.Request.Context(), id))
	resp.AddHeader(RequestIDHeader, id)

	chain.ProcessFilter(req, resp)
}

func Logger(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	start := time.Now()

	chain.ProcessFilter(req, resp)

	id, _ := reqid.FromContext(req.Request.Context())
	log.Info().
		Str("req_id", id).
		Str("method", req.Request.Method).
		Str("path", req.Request.URL.Path).
		Int("status", resp.StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("HTTP request")
}

func RecoverPanic(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Str("path", req.Request.URL.Path).
				Msg("Recovered from panic")
			HandleError(resp, fmt.Errorf("panic: %v", r), http.StatusInternalServerError)
		}
	}()

	chain.ProcessFilter(req, resp)
}
