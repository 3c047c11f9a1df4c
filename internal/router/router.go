package router

import (
	"net/http"
	"net/url"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	docs "github.com/pocketledger/backend/api"
	"github.com/pocketledger/backend/internal/controllers/healthz"
	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Set at build time with -ldflags "-X github.com/pocketledger/backend/internal/router.version=…"
var version = "0.0.0"

type options struct {
	corsAllowOrigins []string
	pprof            bool
}

// Option changes the behaviour of the engine returned by Config.
type Option func(*options)

// WithCORS allows cross-origin requests from the origins passed in.
func WithCORS(origins []string) Option {
	return func(o *options) {
		o.corsAllowOrigins = origins
	}
}

// WithPprof serves pprof performance profiles at /debug/pprof.
func WithPprof(enabled bool) Option {
	return func(o *options) {
		o.pprof = enabled
	}
}

// Config configures the engine with all middlewares. The returned function
// must be called when the engine is not used anymore.
func Config(url *url.URL, opts ...Option) (*gin.Engine, func(), error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	err := registerMetrics()
	if err != nil {
		return nil, func() {}, err
	}

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(url))
	r.Use(MetricsMiddleware())
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "This HTTP method is not allowed for the endpoint you called"})
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	if len(o.corsAllowOrigins) > 0 {
		log.Debug().Strs("CORS Allowed Origins", o.corsAllowOrigins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     o.corsAllowOrigins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	if o.pprof {
		pprof.Register(r)
	}

	log.Debug().Str("API Base URL", url.String()).Str("Host", url.Host).Str("Path", url.Path).Msg("Router")
	log.Info().Str("version", version).Msg("Router")

	docs.SwaggerInfo.Host = url.Host
	docs.SwaggerInfo.BasePath = url.Path
	docs.SwaggerInfo.Title = "Pocket Ledger"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Description = "The store for Pocket Ledger, an envelope budgeting ledger with goals, split transactions and transfers between categories."

	return r, unregisterMetrics, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in
// Separating this from Config() allows us to attach it to different
// paths for different use cases.
func AttachRoutes(group *gin.RouterGroup) {
	group.GET("", GetRoot)
	group.OPTIONS("", OptionsRoot)
	group.GET("/version", GetVersion)
	group.OPTIONS("/version", OptionsVersion)
	group.GET("/metrics", gin.WrapH(promhttp.Handler()))

	healthz.RegisterRoutes(group.Group("/healthz"))

	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 setup
	r := group.Group("/v1")
	{
		r.GET("", GetV1)
		r.OPTIONS("", OptionsV1)
	}

	v1.RegisterAccountRoutes(r.Group("/accounts"))
	v1.RegisterCategoryRoutes(r.Group("/categories"))
	v1.RegisterAllocationRoutes(r.Group("/allocations"))
	v1.RegisterGoalRoutes(r.Group("/goals"))
	v1.RegisterTransferRoutes(r.Group("/category-transfers"))
	v1.RegisterTransactionRoutes(r.Group("/transactions"))
	v1.RegisterPayeeRoutes(r.Group("/payees"))
	v1.RegisterUserRoutes(r.Group("/users"))
	v1.RegisterMatchRuleRoutes(r.Group("/match-rules"))
	v1.RegisterEvaluateRoutes(r.Group("/evaluate"))
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Docs    string `json:"docs" example:"https://example.com/api/docs/index.html"` // Swagger API documentation
	Healthz string `json:"healthz" example:"https://example.com/api/healthz"`      // Healthz endpoint
	Version string `json:"version" example:"https://example.com/api/version"`      // Endpoint returning the version of the backend
	Metrics string `json:"metrics" example:"https://example.com/api/metrics"`      // Endpoint returning Prometheus metrics
	V1      string `json:"v1" example:"https://example.com/api/v1"`                // List endpoint for all v1 endpoints
}

// GetRoot returns the link list for the API root
//
//	@Summary		API root
//	@Description	Entrypoint for the API, listing all endpoints
//	@Tags			General
//	@Success		200	{object}	RootResponse
//	@Router			/ [get]
func GetRoot(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Docs:    url + "/docs/index.html",
			Healthz: url + "/healthz",
			Version: url + "/version",
			Metrics: url + "/metrics",
			V1:      url + "/v1",
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"` // Data object for the version endpoint
}

type VersionObject struct {
	Version string `json:"version" example:"1.1.0"` // the running version of the backend
}

// GetVersion returns the API version object
//
//	@Summary		API version
//	@Description	Returns the software version of the API
//	@Tags			General
//	@Success		200	{object}	VersionResponse
//	@Router			/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// OptionsRoot returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/ [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsVersion returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/version [options]
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V1Response struct {
	Links V1Links `json:"links"` // Links for the v1 API
}

type V1Links struct {
	Accounts          string `json:"accounts" example:"https://example.com/api/v1/accounts"`                     // URL of account list endpoint
	Categories        string `json:"categories" example:"https://example.com/api/v1/categories"`                 // URL of category list endpoint
	CategoryTransfers string `json:"category_transfers" example:"https://example.com/api/v1/category-transfers"` // URL of the category transfer endpoint
	Transactions      string `json:"transactions" example:"https://example.com/api/v1/transactions"`             // URL of the transaction endpoint
	Payees            string `json:"payees" example:"https://example.com/api/v1/payees"`                         // URL of payee list endpoint
	Users             string `json:"users" example:"https://example.com/api/v1/users"`                           // URL of user list endpoint
	MatchRules        string `json:"match_rules" example:"https://example.com/api/v1/match-rules"`               // URL of match rule list endpoint
	Evaluate          string `json:"evaluate" example:"https://example.com/api/v1/evaluate"`                     // URL of the expression evaluation endpoint
}

// GetV1 returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	V1Response
//	@Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL)) + "/v1"

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Accounts:          url + "/accounts",
			Categories:        url + "/categories",
			CategoryTransfers: url + "/category-transfers",
			Transactions:      url + "/transactions",
			Payees:            url + "/payees",
			Users:             url + "/users",
			MatchRules:        url + "/match-rules",
			Evaluate:          url + "/evaluate",
		},
	})
}

// OptionsV1 returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
