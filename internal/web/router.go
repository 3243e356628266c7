package web

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	webembed "github.com/hkanaan/shamshop/web"
)

// NewRouter creates the web page router. The storefront routes are public;
// everything under /manage sits behind the staff session cookie.
func NewRouter(db *sqlx.DB, log *zap.Logger, jwtSecret, shopPhone string) (http.Handler, error) {
	templates, err := LoadTemplates(log)
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:        db,
		Log:       log,
		Templates: templates,
		JWTSecret: jwtSecret,
		ShopPhone: shopPhone,
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(jwtSecret, db, log)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public storefront.
	mux.HandleFunc("GET /{$}", s.HomePage)
	mux.HandleFunc("GET /items", s.ItemsPage)
	mux.HandleFunc("GET /items/{id}", s.ItemDetailPage)
	mux.HandleFunc("POST /items/{id}", s.InquirySubmit)
	mux.HandleFunc("GET /items/{id}/image", s.ItemImageGet)
	mux.HandleFunc("GET /colors/images/{id}", s.ColorImageGet)

	// Staff session.
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("POST /logout", s.Logout)

	// Staff management pages.
	mux.Handle("GET /manage", cookieAuth(http.HandlerFunc(s.ManagePage)))
	mux.Handle("GET /manage/items/new", cookieAuth(http.HandlerFunc(s.ItemNewPage)))
	mux.Handle("POST /manage/items/new", cookieAuth(http.HandlerFunc(s.ItemCreateSubmit)))
	mux.Handle("GET /manage/items/{id}/edit", cookieAuth(http.HandlerFunc(s.ItemEditPage)))
	mux.Handle("POST /manage/items/{id}/edit", cookieAuth(http.HandlerFunc(s.ItemUpdateSubmit)))
	mux.Handle("POST /manage/items/{id}/delete", cookieAuth(http.HandlerFunc(s.ItemDeleteSubmit)))
	mux.Handle("POST /manage/items/{id}/image", cookieAuth(http.HandlerFunc(s.ItemImageSubmit)))
	mux.Handle("POST /manage/items/{id}/colors", cookieAuth(http.HandlerFunc(s.ColorCreateSubmit)))
	mux.Handle("POST /manage/colors/{id}", cookieAuth(http.HandlerFunc(s.ColorUpdateSubmit)))
	mux.Handle("POST /manage/colors/{id}/delete", cookieAuth(http.HandlerFunc(s.ColorDeleteSubmit)))
	mux.Handle("POST /manage/colors/{id}/images", cookieAuth(http.HandlerFunc(s.ColorImageSubmit)))
	mux.Handle("GET /manage/inquiries", cookieAuth(http.HandlerFunc(s.InquiriesPage)))
	mux.Handle("POST /manage/inquiries/{id}/contacted", cookieAuth(http.HandlerFunc(s.InquiryContactedSubmit)))

	return mux, nil
}
