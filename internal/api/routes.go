package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/audit"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/database"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/query"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/sqlgate"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(query.HealthStatus{}).
			Returns(200, "OK", query.HealthStatus{}))

	ws.
		Route(ws.GET("query").
			To(handler.TopSellers).
			Doc("Top 10 games by global sales").
			Metadata(restfulspec.KeyOpenAPITags, []string{"query"}).
			Writes([]database.TopSeller{}).
			Returns(200, "OK", []database.TopSeller{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("query_llm").
			To(handler.QueryLLM).
			Doc("Answer a natural-language question with gated SQL").
			Metadata(restfulspec.KeyOpenAPITags, []string{"query"}).
			Param(ws.QueryParameter("question", "Natural-language question").DataType("string").Required(true)).
			Writes(query.Answer{}).
			Returns(200, "OK", query.Answer{}).
			Returns(400, "Rejected or Bad Request", RejectionResponse{}).
			Returns(503, "Database Not Configured", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("validate").
			To(handler.Validate).
			Doc("Run SQL through the gate without executing it").
			Metadata(restfulspec.KeyOpenAPITags, []string{"gate"}).
			Reads(ValidateRequest{}).
			Writes(sqlgate.Verdict{}).
			Returns(200, "OK", sqlgate.Verdict{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("stats").
			To(handler.Stats).
			Doc("Gate verdict counts since process start").
			Metadata(restfulspec.KeyOpenAPITags, []string{"gate"}).
			Writes(audit.Summary{}).
			Returns(200, "OK", audit.Summary{}))

	ws.
		Route(ws.DELETE("cache").
			To(handler.ClearCache).
			Doc("Clear cached SQL generations").
			Metadata(restfulspec.KeyOpenAPITags, []string{"cache"}).
			Writes(CacheClearResponse{}).
			Returns(200, "OK", CacheClearResponse{}).
			Returns(404, "Cache Not Configured", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	container.Add(ws)
}
