package main

import (
	"net/http"

	"ivarberg/internal/config"
	"ivarberg/internal/events"
	"ivarberg/internal/http/middleware"
	"ivarberg/internal/httpapi"
	"ivarberg/internal/metrics"
	"ivarberg/internal/newsletter"
	"ivarberg/internal/organizers"
	"ivarberg/internal/ratelimit"
	"ivarberg/internal/site"
	"ivarberg/internal/sitemap"
	"ivarberg/internal/tips"
)

func newHTTPHandler(cfg *config.Config, data *backend, limiterStore ratelimit.Store, siteCfg site.Config, m *metrics.Metrics) http.Handler {
	eventSvc := events.New(data.events, data.name, m)
	organizerSvc := organizers.NewService(data.pages, eventSvc)

	limiter := ratelimit.NewLimiter(limiterStore, "tip", cfg.RateLimit.Max, cfg.RateLimit.Window)
	tipSvc := tips.NewService(data.tips, limiter, m)
	newsletterSvc := newsletter.NewService(data.newsletter)

	sitemapHandler := sitemap.NewHandler(siteCfg, data.events, organizerSvc)

	api := httpapi.New(eventSvc, tipSvc, newsletterSvc, organizerSvc, sitemapHandler, siteCfg, m)
	if data.health != nil {
		api.WithHealthCheck(data.health)
	}
	routes := api.Routes()

	var handler http.Handler = routes
	handler = middleware.CORS(cfg.CORS.AllowedOrigins)(handler)
	handler = middleware.Recovery()(handler)
	handler = middleware.RequestLogging()(handler)
	return handler
}
