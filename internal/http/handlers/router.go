package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	appmw "github.com/pearlbistro/ordering-api/internal/http/middleware"
)

// Router wires every route behind its gates. Gate order is fixed:
// RequireAuth always precedes RequireAdmin or RequireSelf.
func (h *Handlers) Router(guard *appmw.Guard, limiter func(http.Handler) http.Handler) chi.Router {
	if limiter == nil {
		limiter = func(next http.Handler) http.Handler { return next }
	}

	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Food server is coming"))
	})

	r.Route("/menu", func(r chi.Router) {
		r.Get("/", h.ListMenu)
		r.Get("/{id}", h.GetMenuItem)
		r.Patch("/{id}", h.UpdateMenuItem)
		r.With(guard.RequireAuth, guard.RequireAdmin).Post("/", h.CreateMenuItem)
		r.With(guard.RequireAuth, guard.RequireAdmin).Delete("/{id}", h.DeleteMenuItem)
	})

	r.Route("/reviews", func(r chi.Router) {
		r.Get("/", h.ListReviews)
		r.Post("/", h.AddReview)
	})

	r.Route("/carts", func(r chi.Router) {
		r.Post("/", h.AddCartEntry)
		r.Get("/", h.ListCart)
		r.Delete("/{id}", h.DeleteCartEntry)
	})

	r.Route("/users", func(r chi.Router) {
		r.With(limiter).Post("/", h.CreateUser)
		r.Get("/", h.ListUsers)
		r.With(guard.RequireAuth, guard.RequireAdmin).Delete("/{id}", h.DeleteUser)
		r.With(guard.RequireAuth, guard.RequireAdmin).Patch("/admin/{id}", h.PromoteUser)
		r.With(guard.RequireAuth, guard.RequireSelf("email")).Get("/admin/{email}", h.CheckAdmin)
	})

	r.With(limiter).Post("/jwt", h.IssueToken)

	r.Post("/create-payment-intent", h.CreatePaymentIntent)

	r.Route("/payments", func(r chi.Router) {
		r.With(guard.RequireAuth).Post("/", h.FinalizeOrder)
		r.Get("/{email}", h.ListPayments)
	})

	r.With(guard.RequireAuth, guard.RequireAdmin).Get("/admin-stats", h.AdminStats)
	r.Get("/order-stats", h.OrderStats)

	return r
}
