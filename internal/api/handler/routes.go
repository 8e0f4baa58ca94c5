package handler

import (
	"net/http"

	"github.com/novamind/content-pipeline-api/internal/api/handler/router"
	"github.com/novamind/content-pipeline-api/internal/usecases/authenticating"
	"github.com/novamind/content-pipeline-api/internal/usecases/benchmarking"
	"github.com/novamind/content-pipeline-api/internal/usecases/campaigning"
	"github.com/novamind/content-pipeline-api/internal/usecases/collecting"
	"github.com/novamind/content-pipeline-api/internal/usecases/exporting"
	"github.com/novamind/content-pipeline-api/internal/usecases/generating"
	"github.com/novamind/content-pipeline-api/internal/usecases/insighting"
	"github.com/novamind/content-pipeline-api/internal/usecases/simulating"
	"github.com/novamind/content-pipeline-api/internal/usecases/trending"
	"github.com/novamind/content-pipeline-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: CreateUser(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Contents(service generating.Generator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/contents",
			Method:      http.MethodPost,
			Handler:     CreateContent(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/contents",
			Method:      http.MethodGet,
			Handler:     ListContent(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/contents/:id",
			Method:      http.MethodGet,
			Handler:     GetContent(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/contents/:id/newsletters",
			Method:      http.MethodPost,
			Handler:     GenerateNewsletters(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/contents/:id/newsletters",
			Method:      http.MethodGet,
			Handler:     ListNewsletters(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Campaigns(manager campaigning.Manager, simulator simulating.Simulator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/campaigns",
			Method:      http.MethodPost,
			Handler:     CreateCampaign(manager),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/campaigns",
			Method:      http.MethodGet,
			Handler:     ListCampaigns(manager),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns/:id",
			Method:      http.MethodGet,
			Handler:     GetCampaign(manager),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns/:id/send",
			Method:      http.MethodPost,
			Handler:     SendCampaign(manager),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/campaigns/:id/simulate",
			Method:      http.MethodPost,
			Handler:     SimulateCampaign(simulator),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/campaigns/:id/snapshots",
			Method:      http.MethodPost,
			Handler:     IngestSnapshot(simulator),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/campaigns/:id/snapshots",
			Method:      http.MethodGet,
			Handler:     ListSnapshots(simulator),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Analysis(
	insighter insighting.Insighter,
	comparator benchmarking.Comparator,
	analyzer trending.Analyzer,
	collector collecting.Collector,
) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/campaigns/:id/analysis",
			Method:      http.MethodPost,
			Handler:     RunAnalysis(insighter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/campaigns/:id/insights",
			Method:      http.MethodPost,
			Handler:     GenerateInsight(insighter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/campaigns/:id/insights",
			Method:      http.MethodGet,
			Handler:     GetLatestInsight(insighter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns/:id/benchmark",
			Method:      http.MethodGet,
			Handler:     GetCampaignBenchmark(comparator),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns/:id/collect",
			Method:      http.MethodPost,
			Handler:     CollectCampaignMetrics(collector),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/trends/:persona",
			Method:      http.MethodGet,
			Handler:     GetPersonaTrend(analyzer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Contacts(service collecting.Collector) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/contacts",
			Method:      http.MethodGet,
			Handler:     ListContacts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/contacts/sync",
			Method:      http.MethodPost,
			Handler:     SyncContacts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Exports(service exporting.Exporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/export",
			Method:      http.MethodGet,
			Handler:     ExportHistory(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
