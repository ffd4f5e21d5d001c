package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/inventory/internal/inventory/service"
	"github.com/aussiebroadwan/inventory/internal/inventory/store"
	"github.com/aussiebroadwan/inventory/pkg/httpx"
	"github.com/aussiebroadwan/inventory/pkg/jwtx"
	"github.com/aussiebroadwan/inventory/pkg/slogx"

	_ "github.com/aussiebroadwan/inventory/api/inventory" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Readiness is checked by /readyz alongside the database.
type Readiness interface {
	Ready() error
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	signer       Readiness
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	// Metrics instruments every route and serves /metrics when set.
	Metrics *httpx.Metrics

	SessionService *service.SessionService
	UserService    *service.UserService
	VendorService  *service.VendorService
}

// NewRouter wires the global middleware. codec both verifies bearer tokens
// and reports signer readiness.
func NewRouter(
	codec *jwtx.Codec,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	corsOrigins []string,
) *Router {
	if logger == nil {
		logger = slog.Default()
	}

	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     codec,
		signer:       codec,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}
	if len(corsOrigins) > 0 {
		r.middlewares = append(r.middlewares, httpx.CORS(corsOrigins))
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSessions()
	r.registerUsers()
	r.registerVendors()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Inventory API
//	@version		0.1.0
//	@description	Multi-tenant inventory manager. Sessions are a short-lived HS256 access token plus a
//	@description	single-use refresh token that is rotated on every refresh.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/inventory
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handle registers h under pattern, instrumented with the pattern as its
// route label.
func (r *Router) handle(pattern string, h http.Handler, m ...httpx.Middleware) {
	if r.Metrics != nil {
		m = append([]httpx.Middleware{r.Metrics.Instrument(pattern)}, m...)
	}
	r.Mux.Handle(pattern, httpx.Chain(h, m...))
}

func (r *Router) registerSessions() {
	h := &SessionsHandler{Sessions: r.SessionService}

	// Login is limited per address and username to slow down guessing.
	r.handle("POST /v1/sessions", http.HandlerFunc(h.HandleLogin),
		httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "username"),
	)
	r.handle("POST /v1/sessions/refresh", http.HandlerFunc(h.HandleRefresh),
		httpx.Authenticate(r.verifier, httpx.AllowExpired),
		httpx.RateLimitByIP(httpx.ModerateLimit),
	)
	r.handle("DELETE /v1/sessions", http.HandlerFunc(h.HandleLogout),
		httpx.RateLimitByIP(httpx.ModerateLimit),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{Sessions: r.SessionService, Users: r.UserService}

	r.handle("POST /v1/users", http.HandlerFunc(h.HandleSignup),
		httpx.RateLimitByIP(httpx.StrictLimit),
	)
	r.handle("GET /v1/users/me", http.HandlerFunc(h.HandleMe),
		httpx.Authenticate(r.verifier, httpx.DefaultPolicy),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)
	// Public profile; a valid bearer only adds the self flag.
	r.handle("GET /v1/users/{username}", http.HandlerFunc(h.HandleGet),
		httpx.Authenticate(r.verifier, httpx.OptionalToken),
		httpx.RateLimitByIP(httpx.LenientLimit),
	)
	r.handle("DELETE /v1/users/{username}", http.HandlerFunc(h.HandleDelete),
		httpx.Authenticate(r.verifier, httpx.DefaultPolicy),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
}

func (r *Router) registerVendors() {
	h := &VendorsHandler{Vendors: r.VendorService}
	authn := httpx.Authenticate(r.verifier, httpx.DefaultPolicy)

	// Reads get the lenient budget, writes the moderate one.
	r.handle("GET /v1/vendors", http.HandlerFunc(h.HandleList),
		authn, httpx.RateLimitByUser(httpx.LenientLimit),
	)
	r.handle("POST /v1/vendors", http.HandlerFunc(h.HandleCreate),
		authn, httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	r.handle("GET /v1/vendors/{vendorID}", http.HandlerFunc(h.HandleGet),
		authn, httpx.RateLimitByUser(httpx.LenientLimit),
	)
	r.handle("PUT /v1/vendors/{vendorID}", http.HandlerFunc(h.HandleUpdate),
		authn, httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	r.handle("DELETE /v1/vendors/{vendorID}", http.HandlerFunc(h.HandleDelete),
		authn, httpx.RateLimitByUser(httpx.ModerateLimit),
	)
}

func (r *Router) registerSystem() {
	// Monitoring polls these frequently.
	r.handle("GET /livez", LivezHandler(r.startTime, r.buildVersion),
		httpx.RateLimitByIP(httpx.LenientLimit),
	)
	r.handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signer),
		httpx.RateLimitByIP(httpx.LenientLimit),
	)

	if r.Metrics != nil {
		r.Mux.Handle("GET /metrics", r.Metrics.Handler())
	}
}
