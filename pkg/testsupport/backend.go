package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sellerhub/go-seller-console/client"
)

// Backend is an in-memory marketplace API for tests. It implements the REST
// contract the client consumes and records how often each endpoint is hit so
// tests can assert on fetch counts and on flows aborted mid-way.
type Backend struct {
	Server *httptest.Server

	mu         sync.Mutex
	products   map[string]client.Product
	categories []client.Category
	profile    client.Seller
	calls      map[string]int

	// Failure toggles. A set toggle makes the matching endpoint answer 500
	// with a server-supplied message, except FailAuth which answers 403.
	FailUploads bool
	FailCreate  bool
	FailEdit    bool
	FailStatus  bool
	FailAuth    bool

	// Metric values served by the metrics endpoints.
	AvailableAmount int64
	SoldAmount      int64
	ViewsAmount     int64
	ViewsSeries     []client.DayViews
}

// NewBackend starts a fake marketplace backend that is shut down with the
// test.
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{
		products: make(map[string]client.Product),
		calls:    make(map[string]int),
		profile:  NewSeller(),
		categories: []client.Category{
			NewCategory("Toys", "toys"),
			NewCategory("Furniture", "furniture"),
			NewCategory("Stationery", "paper"),
			NewCategory("Health & Beauty", "beauty"),
			NewCategory("Utensils", "utensils"),
			NewCategory("Clothing", "clothes"),
		},
		ViewsSeries: []client.DayViews{
			{Date: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), Amount: 12},
			{Date: time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC), Amount: 31},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products/me", b.handleListProducts)
	mux.HandleFunc("GET /products/{id}", b.handleGetProduct)
	mux.HandleFunc("POST /products", b.handleCreateProduct)
	mux.HandleFunc("PUT /products/{id}", b.handleEditProduct)
	mux.HandleFunc("PATCH /products/{id}/{status}", b.handleChangeStatus)
	mux.HandleFunc("GET /categories", b.handleListCategories)
	mux.HandleFunc("POST /attachments", b.handleUpload)
	mux.HandleFunc("POST /sellers", b.handleRegister)
	mux.HandleFunc("POST /sellers/sessions", b.handleAuthenticate)
	mux.HandleFunc("POST /sign-out", b.handleSignOut)
	mux.HandleFunc("GET /sellers/me", b.handleProfile)
	mux.HandleFunc("GET /sellers/metrics/products/available", b.handleAmount("MetricsAvailable", &b.AvailableAmount))
	mux.HandleFunc("GET /sellers/metrics/products/sold", b.handleAmount("MetricsSold", &b.SoldAmount))
	mux.HandleFunc("GET /sellers/metrics/views", b.handleAmount("MetricsViews", &b.ViewsAmount))
	mux.HandleFunc("GET /sellers/metrics/views/days", b.handleViewsPerDay)

	b.Server = httptest.NewServer(mux)
	t.Cleanup(b.Server.Close)

	return b
}

// SeedProduct stores a product so list and detail reads return it.
func (b *Backend) SeedProduct(p client.Product) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.products[p.ID] = p
}

// Profile returns the seller profile the backend serves.
func (b *Backend) Profile() client.Seller {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.profile
}

// CallCount returns how many times the named endpoint was hit.
func (b *Backend) CallCount(endpoint string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[endpoint]
}

func (b *Backend) record(endpoint string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls[endpoint]++
}

func (b *Backend) handleListProducts(w http.ResponseWriter, r *http.Request) {
	b.record("ListProducts")

	search := r.URL.Query().Get("search")
	status := r.URL.Query().Get("status")

	b.mu.Lock()
	var products []client.Product
	for _, p := range b.products {
		if search != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(search)) {
			continue
		}
		if status != "" && string(p.Status) != status {
			continue
		}
		products = append(products, p)
	}
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (b *Backend) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	b.record("GetProduct")

	b.mu.Lock()
	p, ok := b.products[r.PathValue("id")]
	b.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Product not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product": p})
}

func (b *Backend) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	b.record("CreateProduct")

	if b.FailCreate {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "create failed"})
		return
	}

	var input client.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid body"})
		return
	}

	p := client.Product{
		ID:           uuid.NewString(),
		Title:        input.Title,
		Description:  input.Description,
		PriceInCents: input.PriceInCents,
		Status:       client.StatusAvailable,
		Owner:        b.Profile(),
		Category:     client.Category{ID: input.CategoryID},
		Attachments:  attachmentsFromIDs(input.AttachmentsIDs),
	}
	b.SeedProduct(p)

	writeJSON(w, http.StatusCreated, map[string]any{"product": p})
}

func (b *Backend) handleEditProduct(w http.ResponseWriter, r *http.Request) {
	b.record("EditProduct")

	if b.FailEdit {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "edit failed"})
		return
	}

	b.mu.Lock()
	p, ok := b.products[r.PathValue("id")]
	b.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Product not found"})
		return
	}

	var input client.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid body"})
		return
	}

	p.Title = input.Title
	p.Description = input.Description
	p.PriceInCents = input.PriceInCents
	p.Category = client.Category{ID: input.CategoryID}
	p.Attachments = attachmentsFromIDs(input.AttachmentsIDs)
	b.SeedProduct(p)

	writeJSON(w, http.StatusOK, map[string]any{"product": p})
}

func (b *Backend) handleChangeStatus(w http.ResponseWriter, r *http.Request) {
	b.record("ChangeStatus")

	if b.FailStatus {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "status change failed"})
		return
	}

	b.mu.Lock()
	p, ok := b.products[r.PathValue("id")]
	b.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Product not found"})
		return
	}

	p.Status = client.ProductStatus(r.PathValue("status"))
	b.SeedProduct(p)

	writeJSON(w, http.StatusOK, map[string]any{"product": p})
}

func (b *Backend) handleListCategories(w http.ResponseWriter, r *http.Request) {
	b.record("ListCategories")
	writeJSON(w, http.StatusOK, map[string]any{"categories": b.categories})
}

func (b *Backend) handleUpload(w http.ResponseWriter, r *http.Request) {
	b.record("Upload")

	if b.FailUploads {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "upload failed"})
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "expected multipart form data"})
		return
	}

	files := r.MultipartForm.File["files"]
	attachments := make([]client.Attachment, len(files))
	for i, file := range files {
		attachments[i] = client.Attachment{
			ID:  uuid.NewString(),
			URL: "https://cdn.example.com/uploads/" + file.Filename,
		}
	}

	writeJSON(w, http.StatusCreated, map[string]any{"attachments": attachments})
}

func (b *Backend) handleRegister(w http.ResponseWriter, r *http.Request) {
	b.record("Register")
	w.WriteHeader(http.StatusCreated)
}

func (b *Backend) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	b.record("Authenticate")

	if b.FailAuth {
		writeJSON(w, http.StatusForbidden, map[string]any{"message": "credentials do not match"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"accessToken": "test-token"})
}

func (b *Backend) handleSignOut(w http.ResponseWriter, r *http.Request) {
	b.record("SignOut")
	w.WriteHeader(http.StatusOK)
}

func (b *Backend) handleProfile(w http.ResponseWriter, r *http.Request) {
	b.record("Profile")
	writeJSON(w, http.StatusOK, map[string]any{"seller": b.Profile()})
}

func (b *Backend) handleAmount(endpoint string, amount *int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.record(endpoint)
		writeJSON(w, http.StatusOK, map[string]any{"amount": *amount})
	}
}

func (b *Backend) handleViewsPerDay(w http.ResponseWriter, r *http.Request) {
	b.record("MetricsViewsPerDay")
	writeJSON(w, http.StatusOK, map[string]any{"viewsPerDay": b.ViewsSeries})
}

func attachmentsFromIDs(ids []string) []client.Attachment {
	attachments := make([]client.Attachment, len(ids))
	for i, id := range ids {
		attachments[i] = client.Attachment{ID: id, URL: "https://cdn.example.com/uploads/" + id}
	}
	return attachments
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
