package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hkanaan/shamshop/internal/db"
	"github.com/hkanaan/shamshop/internal/model"
	"github.com/hkanaan/shamshop/internal/store"
)

const testShopPhone = "+963937341881"

type webFixture struct {
	server *httptest.Server
	client *http.Client
	db     *sqlx.DB
	item   *model.Item
	red    *model.Color
	city   *model.City
	place  *model.Place
}

func setupWebServer(t *testing.T) *webFixture {
	t.Helper()
	database := db.NewTestDB(t)

	router, err := NewRouter(database, zap.NewNop(), "test-secret", testShopPhone)
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user, _ := store.CreateUser(ctx, database, "seller", string(hash), model.RoleStaff)
	category, _ := store.CreateCategory(ctx, database, "Lighting")
	item, _ := store.CreateItem(ctx, database, category.ID, "Lamp", "Brass desk lamp", 1000, user.ID)
	red, _ := store.CreateColor(ctx, database, item.ID, "Red")
	city, _ := store.CreateCity(ctx, database, "Damascus")
	place, _ := store.CreatePlace(ctx, database, city.ID, "Mazzeh")

	// Redirects carry the interesting assertions, so don't follow them.
	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &webFixture{
		server: server, client: client, db: database,
		item: item, red: red, city: city, place: place,
	}
}

func (f *webFixture) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := f.client.Get(f.server.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return resp, string(body)
}

func (f *webFixture) postForm(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := f.client.PostForm(f.server.URL+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return resp, string(body)
}

func (f *webFixture) validInquiryForm() url.Values {
	return url.Values{
		"customer_name":  {"Ali"},
		"customer_phone": {"0991234567"},
		"color_id":       {strconv.FormatInt(f.red.ID, 10)},
		"city_id":        {strconv.FormatInt(f.city.ID, 10)},
		"place_id":       {strconv.FormatInt(f.place.ID, 10)},
	}
}

func TestHomePage(t *testing.T) {
	f := setupWebServer(t)

	resp, body := f.get(t, "/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	for _, want := range []string{"Lamp", "Lighting"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected home page to mention %q", want)
		}
	}
}

func TestItemDetailPage(t *testing.T) {
	f := setupWebServer(t)

	resp, body := f.get(t, "/items/"+strconv.FormatInt(f.item.ID, 10))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	for _, want := range []string{"Lamp", "Red", "Damascus", "Buy via WhatsApp"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected detail page to mention %q", want)
		}
	}
}

func TestItemDetailNotFound(t *testing.T) {
	f := setupWebServer(t)

	resp, _ := f.get(t, "/items/9999")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}

	// Deleted listings disappear from the storefront.
	store.DeleteItem(context.Background(), f.db, f.item.ID)
	resp, _ = f.get(t, "/items/"+strconv.FormatInt(f.item.ID, 10))
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for deleted item, got %d", resp.StatusCode)
	}
}

func TestInquirySubmitRedirectsToWhatsApp(t *testing.T) {
	f := setupWebServer(t)

	resp, _ := f.postForm(t, "/items/"+strconv.FormatInt(f.item.ID, 10), f.validInquiryForm())
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}

	location := resp.Header.Get("Location")
	if !strings.HasPrefix(location, "https://wa.me/"+testShopPhone+"?text=") {
		t.Fatalf("expected wa.me redirect, got %q", location)
	}
	decoded, err := url.QueryUnescape(strings.TrimPrefix(location, "https://wa.me/"+testShopPhone+"?text="))
	if err != nil {
		t.Fatalf("unescaping text: %v", err)
	}
	for _, want := range []string{"Item: Lamp", "Color: Red", "Name: Ali", "City: Damascus", "Place of Delivery: Mazzeh"} {
		if !strings.Contains(decoded, want) {
			t.Errorf("expected message to contain %q:\n%s", want, decoded)
		}
	}

	inquiries, _ := store.ListInquiries(context.Background(), f.db, nil)
	if len(inquiries) != 1 {
		t.Fatalf("expected 1 recorded inquiry, got %d", len(inquiries))
	}
}

func TestInquirySubmitValidationErrors(t *testing.T) {
	f := setupWebServer(t)

	form := f.validInquiryForm()
	form.Set("customer_phone", "")

	resp, body := f.postForm(t, "/items/"+strconv.FormatInt(f.item.ID, 10), form)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected re-render with 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Phone number is required.") {
		t.Error("expected the phone error on the page")
	}
	// The submitted name survives the re-render.
	if !strings.Contains(body, "Ali") {
		t.Error("expected the form to keep the submitted name")
	}

	inquiries, _ := store.ListInquiries(context.Background(), f.db, nil)
	if len(inquiries) != 0 {
		t.Errorf("expected no recorded inquiries, got %d", len(inquiries))
	}
}

func TestInquirySubmitForeignColorRejected(t *testing.T) {
	f := setupWebServer(t)
	ctx := context.Background()

	other, _ := store.CreateItem(ctx, f.db, f.item.CategoryID, "Vase", "", 300, f.item.CreatedBy)
	foreign, _ := store.CreateColor(ctx, f.db, other.ID, "Blue")

	form := f.validInquiryForm()
	form.Set("color_id", strconv.FormatInt(foreign.ID, 10))

	resp, _ := f.postForm(t, "/items/"+strconv.FormatInt(f.item.ID, 10), form)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected re-render with 200, got %d", resp.StatusCode)
	}

	inquiries, _ := store.ListInquiries(ctx, f.db, nil)
	if len(inquiries) != 0 {
		t.Errorf("expected no recorded inquiries, got %d", len(inquiries))
	}
}

func TestManageRequiresLogin(t *testing.T) {
	f := setupWebServer(t)

	resp, _ := f.get(t, "/manage")
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Location") != "/login" {
		t.Errorf("expected redirect to /login, got %q", resp.Header.Get("Location"))
	}
}

func TestLoginFlow(t *testing.T) {
	f := setupWebServer(t)

	resp, _ := f.postForm(t, "/login", url.Values{
		"username": {"seller"},
		"password": {"password123"},
	})
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303 after login, got %d", resp.StatusCode)
	}

	var token *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "token" {
			token = c
		}
	}
	if token == nil || token.Value == "" {
		t.Fatal("expected a session cookie")
	}

	req, _ := http.NewRequest("GET", f.server.URL+"/manage", nil)
	req.AddCookie(token)
	authed, err := f.client.Do(req)
	if err != nil {
		t.Fatalf("GET /manage: %v", err)
	}
	body, _ := io.ReadAll(authed.Body)
	authed.Body.Close()
	if authed.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with cookie, got %d", authed.StatusCode)
	}
	if !strings.Contains(string(body), "Lamp") {
		t.Error("expected the seller's listing on the manage page")
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	f := setupWebServer(t)

	resp, body := f.postForm(t, "/login", url.Values{
		"username": {"seller"},
		"password": {"wrong"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected re-render with 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Incorrect username or password.") {
		t.Error("expected the login error on the page")
	}
}

func TestSoldItemHidesInquiryForm(t *testing.T) {
	f := setupWebServer(t)
	ctx := context.Background()

	store.UpdateItem(ctx, f.db, f.item.ID, f.item.Name, f.item.Description, f.item.Price, true)

	resp, body := f.get(t, "/items/"+strconv.FormatInt(f.item.ID, 10))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if strings.Contains(body, "Buy via WhatsApp") {
		t.Error("sold items must not offer the inquiry form")
	}
	if !strings.Contains(body, "Sold") {
		t.Error("expected the sold badge")
	}
}
