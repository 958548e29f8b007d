package api

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/audit"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/cache"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/database"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/generator"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/query"
	"github.com/rs/zerolog"
)

type Handler struct {
	service  *query.Service
	stats    *audit.Stats
	sqlCache cache.SQLCache
	logger   *zerolog.Logger
}

// NewHandler builds the HTTP handlers. sqlCache may be nil.
func NewHandler(service *query.Service, stats *audit.Stats, sqlCache cache.SQLCache, logger *zerolog.Logger) *Handler {
	return &Handler{
		service:  service,
		stats:    stats,
		sqlCache: sqlCache,
		logger:   logger,
	}
}

// Health handler GET /api/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, h.service.Health(req.Request.Context()))
}

// TopSellers handles GET /api/query
func (h *Handler) TopSellers(req *restful.Request, resp *restful.Response) {
	sellers, err := h.service.TopSellers(req.Request.Context())
	if err != nil {
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, sellers)
}

// QueryLLM handles GET /api/query_llm?question=...
func (h *Handler) QueryLLM(req *restful.Request, resp *restful.Response) {
	question := strings.TrimSpace(req.QueryParameter("question"))
	if question == "" {
		middleware.HandleError(resp, middleware.ErrMissingQuestion, http.StatusBadRequest)
		return
	}
	if utf8.RuneCountInString(question) > maxQuestionLength {
		middleware.HandleError(resp, middleware.ErrQuestionTooLong, http.StatusBadRequest)
		return
	}

	answer, err := h.service.Ask(req.Request.Context(), question)
	if err != nil {
		h.writeAskError(resp, err)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, answer)
}

func (h *Handler) writeAskError(resp *restful.Response, err error) {
	var rejected *query.RejectedError
	switch {
	case errors.As(err, &rejected):
		resp.WriteHeaderAndEntity(http.StatusBadRequest, RejectionResponse{
			Error:       rejected.Verdict.Reason(),
			Code:        http.StatusBadRequest,
			Tag:         rejected.Verdict.Tag,
			Keyword:     rejected.Verdict.Keyword,
			RequestID:   rejected.RequestID,
			Description: rejected.Description,
		})
	case errors.Is(err, generator.ErrEmptyQuestion):
		middleware.HandleError(resp, err, http.StatusBadRequest)
	case errors.Is(err, query.ErrDatabaseNotConfigured):
		middleware.HandleError(resp, err, http.StatusServiceUnavailable)
	case errors.Is(err, database.ErrStatementTimeout):
		h.logger.Warn().Err(err).Msg("Query exceeded statement timeout")
		middleware.HandleError(resp, err, http.StatusGatewayTimeout)
	default:
		h.logger.Error().Err(err).Msg("Failed to answer question")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
	}
}

// Validate handles POST /api/validate. The statement is never executed.
func (h *Handler) Validate(req *restful.Request, resp *restful.Response) {
	var validateRequest ValidateRequest
	if err := req.ReadEntity(&validateRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, h.service.Validate(req.Request.Context(), validateRequest.SQL))
}

// ClearCache handles DELETE /api/cache
func (h *Handler) ClearCache(req *restful.Request, resp *restful.Response) {
	if h.sqlCache == nil {
		middleware.HandleError(resp, middleware.ErrCacheDisabled, http.StatusNotFound)
		return
	}

	deleted, err := h.sqlCache.Clear(req.Request.Context())
	if err != nil {
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	h.logger.Info().Int("deleted", deleted).Msg("SQL cache cleared")
	resp.WriteHeaderAndEntity(http.StatusOK, CacheClearResponse{Deleted: deleted})
}

// Stats handles GET /api/stats
func (h *Handler) Stats(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, h.stats.Summary())
}
