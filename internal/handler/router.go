package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	custommiddleware "github.com/mmeshcher/feedcalc/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware калькулятора кормов.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))
	r.Use(custommiddleware.Metrics(h.metrics))

	r.Handle("/metrics", h.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(h.sessions.Middleware)

		r.Get("/feeds", h.ListFeeds)
		r.Get("/feeds/suggest", h.SuggestFeeds)
		r.Post("/feeds/select", h.SelectFeed)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Post("/items", h.AddCartItem)
			r.Delete("/items/{index}", h.RemoveCartItem)
			r.Post("/save", h.SaveCart)
			r.Get("/pdf", h.CartPDF)
		})

		r.Route("/feed-history", func(r chi.Router) {
			r.Get("/", h.ListFeedHistory)
			r.Get("/pdf", h.FeedHistoryPDF)
			r.Delete("/{id}", h.DeleteFeedHistory)
		})

		r.Route("/broiler", func(r chi.Router) {
			r.Post("/calculate", h.CalculateBroiler)
			r.Get("/history", h.ListBroilerHistory)
			r.Post("/history", h.SaveBroiler)
			r.Delete("/history/{id}", h.DeleteBroilerHistory)
		})

		r.Route("/profit", func(r chi.Router) {
			r.Post("/calculate", h.CalculateProfit)
			r.Get("/history", h.ListProfitHistory)
			r.Post("/history", h.SaveProfit)
			r.Delete("/history/{id}", h.DeleteProfitHistory)
		})

		r.Get("/company-info", h.GetCompanyInfo)
		r.Get("/farm-info", h.GetFarmInfo)
		r.Get("/notices", h.ListNotices)

		r.Get("/assistant", h.Greeting)
		r.Post("/assistant/chat", h.Chat)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", h.AdminLogin)
			r.Post("/logout", h.AdminLogout)

			r.Group(func(r chi.Router) {
				r.Use(h.admin.Middleware)

				r.Get("/feeds", h.AdminListFeeds)
				r.Post("/feeds", h.AdminCreateFeed)
				r.Get("/feeds/pdf", h.AdminFeedsPDF)
				r.Post("/feeds/import/preview", h.AdminPreviewImport)
				r.Post("/feeds/import", h.AdminConfirmImport)
				r.Put("/feeds/{code}", h.AdminUpdateFeed)
				r.Delete("/feeds/{code}", h.AdminDeleteFeed)

				r.Get("/notices", h.AdminListNotices)
				r.Post("/notices", h.AdminCreateNotice)
				r.Put("/notices/{id}", h.AdminUpdateNotice)
				r.Delete("/notices/{id}", h.AdminDeleteNotice)

				r.Put("/company-info", h.AdminUpdateCompanyInfo)
				r.Put("/farm-info", h.AdminUpdateFarmInfo)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})

	return r
}
