package http

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/slipwaylabs/slipway/internal/config"
	"github.com/slipwaylabs/slipway/internal/core/ports"
)

// ProxyHandler manages reverse proxying for app subdomains.
type ProxyHandler struct {
	service ports.AppService
	domain  string
	appPort string
}

// NewProxyHandler creates a new proxy handler. domain is the suffix app
// subdomains hang off (e.g. "localhost" serves myapp.localhost); appPort
// is the fallback target port for containers that expose none.
func NewProxyHandler(service ports.AppService, domain, appPort string) *ProxyHandler {
	return &ProxyHandler{service: service, domain: domain, appPort: appPort}
}

// ProxyRequest intercepts requests to single-label subdomains of the
// configured domain (e.g. myapp.localhost) and routes them to the
// corresponding container's IP and listening port. Hosts outside the
// domain, including the domain itself, fall through to the API routes.
func (h *ProxyHandler) ProxyRequest(c *fiber.Ctx) error {
	host := c.Hostname()

	// 1. Extract subdomain
	suffix := "." + h.domain
	if !strings.HasSuffix(host, suffix) {
		return c.Next()
	}
	subdomain := strings.TrimSuffix(host, suffix)

	if subdomain == "www" || subdomain == "" || strings.Contains(subdomain, ".") {
		return c.Next()
	}

	// 2. Find the app container by name
	apps, err := h.service.ListApps(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to list apps")
	}

	var targetIP, targetPort string
	for _, app := range apps {
		if app.Name == subdomain {
			// Only proxy to running containers
			if app.State != "running" {
				continue
			}
			targetIP = app.IPAddress
			targetPort = config.Resolve(app.Port, h.appPort)
			break
		}
	}

	if targetIP == "" {
		return c.Status(fiber.StatusNotFound).SendString(fmt.Sprintf("App '%s' not found or not running", subdomain))
	}

	// 3. Proxy the request
	targetURL := fmt.Sprintf("http://%s:%s", targetIP, targetPort)
	remote, err := url.Parse(targetURL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Invalid target URL")
	}

	proxy := httputil.NewSingleHostReverseProxy(remote)

	// Rewrite the Host header to the target so the app inside sees a
	// host it recognizes.
	originalDirector := proxy.Director
	proxy.Director = func(req *http.Request) {
		originalDirector(req)
		req.Host = remote.Host
		req.URL.Host = remote.Host
		req.URL.Scheme = remote.Scheme
	}

	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(fmt.Sprintf("Proxy Info: target=%s error=%v", targetURL, err)))
	}

	return adaptor.HTTPHandler(proxy)(c)
}
