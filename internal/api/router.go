package api

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/hkanaan/shamshop/internal/model"
)

// NewRouter creates the API router with all endpoints registered. Everything
// under /api requires a staff token except login and the public places
// lookup used by the storefront's cascading city/place dropdowns.
func NewRouter(db *sqlx.DB, log *zap.Logger, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, Log: log, JWTSecret: jwtSecret}
	usersHandler := &UsersHandler{DB: db, Log: log}
	categoriesHandler := &CategoriesHandler{DB: db, Log: log}
	itemsHandler := &ItemsHandler{DB: db, Log: log}
	colorsHandler := &ColorsHandler{DB: db, Log: log}
	locationsHandler := &LocationsHandler{DB: db, Log: log}
	inquiriesHandler := &InquiriesHandler{DB: db, Log: log}

	authMW := AuthMiddleware(jwtSecret, db)
	requireAdmin := RequireRole(model.RoleAdmin)

	staff := func(h http.HandlerFunc) http.Handler {
		return authMW(h)
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return authMW(requireAdmin(h))
	}

	// Public: login and the cascading selector's place lookup.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/cities/{id}/places", locationsHandler.ListPlaces)

	// Session.
	mux.Handle("POST /api/auth/logout", staff(authHandler.Logout))
	mux.Handle("PUT /api/auth/password", staff(authHandler.ChangePassword))

	// Staff accounts (admin only).
	mux.Handle("GET /api/users", admin(usersHandler.List))
	mux.Handle("POST /api/users", admin(usersHandler.Create))
	mux.Handle("GET /api/users/{id}", admin(usersHandler.Get))
	mux.Handle("PUT /api/users/{id}", admin(usersHandler.Update))
	mux.Handle("PUT /api/users/{id}/password", admin(usersHandler.ResetPassword))
	mux.Handle("DELETE /api/users/{id}", admin(usersHandler.Delete))

	// Categories.
	mux.Handle("GET /api/categories", staff(categoriesHandler.List))
	mux.Handle("POST /api/categories", staff(categoriesHandler.Create))
	mux.Handle("PUT /api/categories/{id}", staff(categoriesHandler.Update))
	mux.Handle("DELETE /api/categories/{id}", staff(categoriesHandler.Delete))

	// Items. Writes additionally enforce the creator-or-admin rule.
	mux.Handle("GET /api/items", staff(itemsHandler.List))
	mux.Handle("POST /api/items", staff(itemsHandler.Create))
	mux.Handle("GET /api/items/{id}", staff(itemsHandler.Get))
	mux.Handle("PUT /api/items/{id}", staff(itemsHandler.Update))
	mux.Handle("DELETE /api/items/{id}", staff(itemsHandler.Delete))
	mux.Handle("PUT /api/items/{id}/image", staff(itemsHandler.UploadImage))
	mux.Handle("GET /api/items/{id}/image", staff(itemsHandler.GetImage))
	mux.Handle("GET /api/items/{id}/inquiries", staff(itemsHandler.ListInquiries))

	// Color variants and their photos.
	mux.Handle("GET /api/items/{id}/colors", staff(colorsHandler.List))
	mux.Handle("POST /api/items/{id}/colors", staff(colorsHandler.Create))
	mux.Handle("PUT /api/colors/{id}", staff(colorsHandler.Update))
	mux.Handle("DELETE /api/colors/{id}", staff(colorsHandler.Delete))
	mux.Handle("POST /api/colors/{id}/images", staff(colorsHandler.UploadImage))
	mux.Handle("GET /api/colors/images/{id}", staff(colorsHandler.GetImage))
	mux.Handle("DELETE /api/colors/images/{id}", staff(colorsHandler.DeleteImage))

	// Delivery locations.
	mux.Handle("GET /api/cities", staff(locationsHandler.ListCities))
	mux.Handle("POST /api/cities", staff(locationsHandler.CreateCity))
	mux.Handle("DELETE /api/cities/{id}", staff(locationsHandler.DeleteCity))
	mux.Handle("POST /api/cities/{id}/places", staff(locationsHandler.CreatePlace))
	mux.Handle("DELETE /api/places/{id}", staff(locationsHandler.DeletePlace))

	// Customer inquiries.
	mux.Handle("GET /api/inquiries", staff(inquiriesHandler.List))
	mux.Handle("GET /api/inquiries/{id}", staff(inquiriesHandler.Get))
	mux.Handle("PUT /api/inquiries/{id}/contacted", staff(inquiriesHandler.SetContacted))

	return mux
}
