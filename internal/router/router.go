// Package router wires every HTTP route of the API onto a chi router.
package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/unclebandit/marketing-ops-backend/internal/controller"
	"github.com/unclebandit/marketing-ops-backend/internal/handler"
	"github.com/unclebandit/marketing-ops-backend/internal/logging"
)

type Deps struct {
	Campaigns    *controller.CampaignController
	Brands       *controller.BrandController
	LandingPages *controller.LandingPageController
	Leads        *controller.LeadController
	Assistant    *controller.AssistantController
	Images       *handler.ImageHandler
	Landing      *handler.LandingHandler
	Health       *handler.HealthHandler
	CORSOrigins  []string
}

func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins(d.CORSOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", d.Health.Health)
	r.Get("/landing/{sessionId}", d.Landing.ServePage)

	r.Route("/api", func(r chi.Router) {
		// The landing page builder can take minutes, so it is the only route
		// without the request timeout.
		r.Post("/landing-pages/session/{sessionId}/messages", d.LandingPages.SendMessage)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(2 * time.Minute))

			r.Get("/dashboard", d.Campaigns.Dashboard)

			r.Route("/brands", func(r chi.Router) {
				r.Get("/", d.Brands.ListBrands)
				r.Post("/", d.Brands.CreateBrand)
				r.Get("/{id}", d.Brands.GetBrand)
				r.Put("/{id}", d.Brands.UpdateBrand)
				r.Delete("/{id}", d.Brands.DeleteBrand)
			})

			r.Route("/campaigns", func(r chi.Router) {
				r.Get("/", d.Campaigns.ListCampaigns)
				r.Post("/", d.Campaigns.CreateCampaign)
				r.Get("/form-options", d.Campaigns.FormOptions)
				r.Post("/test-email", d.Campaigns.SendTestEmail)
				r.Post("/test-mms", d.Campaigns.SendTestMMS)
				r.Get("/{id}", d.Campaigns.GetCampaign)
				r.Put("/{id}", d.Campaigns.UpdateCampaign)
				r.Delete("/{id}", d.Campaigns.DeleteCampaign)
				r.Post("/{id}/launch", d.Campaigns.LaunchCampaign)
				r.Post("/{id}/personalized-preview", d.Campaigns.PersonalizedPreview)
			})

			r.Post("/content/generate", d.Campaigns.GenerateContent)

			r.Get("/leads", d.Leads.ListLeads)
			r.Get("/leads/export", d.Leads.ExportLeads)

			r.Route("/landing-pages", func(r chi.Router) {
				r.Get("/", d.LandingPages.ListLandingPages)
				r.Post("/", d.LandingPages.CreateLandingPage)
				r.Get("/session/{sessionId}", d.LandingPages.GetBySession)
				r.Get("/{id}", d.LandingPages.GetLandingPage)
				r.Delete("/{id}", d.LandingPages.DeleteLandingPage)
				r.Put("/{id}/header-code", d.LandingPages.UpdateHeaderCode)
			})

			r.Get("/images", d.Images.ListImages)
			r.Put("/images/{id}", d.Images.UpdateImageBrand)
			r.Post("/upload-image", d.Images.UploadImages)
			r.Delete("/delete-image", d.Images.DeleteImage)

			r.Get("/logs", d.Assistant.ListLogs)
			r.Get("/logs/{id}", d.Assistant.GetLog)

			r.Post("/chat", d.Assistant.Chat)
			r.Post("/flows/leads/launch", d.Assistant.LaunchLeadsFlow)
		})
	})

	return r
}

func origins(configured []string) []string {
	out := []string{}
	for _, o := range configured {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
