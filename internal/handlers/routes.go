package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mkale/rosterd/internal/auth"
	"github.com/mkale/rosterd/internal/middleware"
	"github.com/mkale/rosterd/internal/service"
)

// Handlers bundles the services behind the HTTP surface.
type Handlers struct {
	Auth          *service.AuthService
	Groups        *service.GroupService
	Memberships   *service.MembershipService
	Shifts        *service.ShiftService
	Swaps         *service.SwapService
	Notifications *service.NotificationService
	JWT           *auth.JWTManager
}

// NewRouter builds the API router. The route shape follows the frontend's
// expectations: public session endpoints, then everything else behind the
// bearer-token middleware.
func NewRouter(h *Handlers) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Metrics)
	r.Use(middleware.Logging)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/signup", h.signup)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.JWT))

		r.Get("/user", h.currentUser)
		r.Get("/groups/search", h.searchGroups)

		r.Get("/user/groups", h.listMyGroups)
		r.Post("/user/groups", h.createGroup)
		r.Route("/user/groups/{groupID}", func(r chi.Router) {
			r.Get("/", h.getGroup)
			r.Delete("/", h.deleteGroup)
			r.Post("/membership/request-join", h.requestJoin)
			r.Get("/shifts", h.listShifts)
			r.Post("/shift", h.createShift)
			r.Put("/shift/{shiftID}", h.modifyShift)
			r.Delete("/shift/{shiftID}", h.deleteShift)
			r.Post("/shift/{shiftID}/swap", h.openSwap)
		})

		r.Post("/user/memberships/{membershipID}/approve-join", h.approveJoin)
		r.Post("/user/memberships/{membershipID}/decline-join", h.declineJoin)
		r.Put("/user/memberships/{membershipID}/admin", h.setAdmin)

		r.Post("/user/swaps/{swapID}/link", h.linkSwap)
		r.Post("/user/swaps/{swapID}/approve", h.approveSwap)
		r.Post("/user/swaps/{swapID}/decline", h.declineSwap)

		r.Get("/user/notifications", h.listNotifications)
		r.Post("/user/notifications/read-all", h.readAllNotifications)
	})

	return r
}
