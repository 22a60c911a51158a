package client_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sellerhub/go-seller-console/client"
	"github.com/sellerhub/go-seller-console/pkg/testsupport"
)

func newClient(t *testing.T, handler http.Handler, cfg client.Config) *client.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg.BaseURL = server.URL
	c, err := client.New(cfg)
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return c
}

func strPtr(s string) *string { return &s }

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := client.New(client.Config{}); err == nil {
		t.Fatal("expected an error for a missing base URL")
	}
}

func TestListProductsRequestShape(t *testing.T) {
	tests := []struct {
		name      string
		query     client.ListProductsQuery
		wantQuery string
	}{
		{
			name:      "no filters",
			query:     client.ListProductsQuery{},
			wantQuery: "",
		},
		{
			name:      "search only",
			query:     client.ListProductsQuery{Search: strPtr("desk")},
			wantQuery: "search=desk",
		},
		{
			name:      "both filters",
			query:     client.ListProductsQuery{Search: strPtr("desk"), Status: strPtr("available")},
			wantQuery: "search=desk&status=available",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotQuery, gotAuth, gotAccept string
			c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotQuery = r.URL.RawQuery
				gotAuth = r.Header.Get("Authorization")
				gotAccept = r.Header.Get("Accept")
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"products": []}`))
			}), client.Config{AccessToken: "token-123"})

			if _, err := c.ListProducts(context.Background(), tt.query); err != nil {
				t.Fatalf("list products: %v", err)
			}

			if gotPath != "/products/me" {
				t.Errorf("path = %q, want /products/me", gotPath)
			}
			if gotQuery != tt.wantQuery {
				t.Errorf("query = %q, want %q", gotQuery, tt.wantQuery)
			}
			if gotAuth != "Bearer token-123" {
				t.Errorf("authorization = %q, want bearer token", gotAuth)
			}
			if gotAccept != "application/json" {
				t.Errorf("accept = %q, want application/json", gotAccept)
			}
		})
	}
}

func TestGetProductDecodesPayload(t *testing.T) {
	payload := testsupport.LoadFixture(t, testsupport.FixturePath("product.json"))
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/7b98e2a4-3c55-4f09-9a26-51b1a8f0c1de" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(payload)
	}), client.Config{})

	product, err := c.GetProduct(context.Background(), "7b98e2a4-3c55-4f09-9a26-51b1a8f0c1de")
	if err != nil {
		t.Fatalf("get product: %v", err)
	}

	if product.Title != "Mid-century armchair" {
		t.Errorf("title = %q", product.Title)
	}
	if product.PriceInCents != 129900 {
		t.Errorf("priceInCents = %d", product.PriceInCents)
	}
	if product.Status != client.StatusAvailable {
		t.Errorf("status = %q", product.Status)
	}
	if product.Owner.Avatar == nil || product.Owner.Avatar.URL == "" {
		t.Error("owner avatar was not decoded")
	}
	if product.Category.Slug != "furniture" {
		t.Errorf("category slug = %q", product.Category.Slug)
	}
	if len(product.Attachments) != 2 {
		t.Errorf("attachments = %d, want 2", len(product.Attachments))
	}
}

func TestRequestErrorCarriesServerMessage(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Product not found"}`))
	}), client.Config{})

	_, err := c.GetProduct(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected an error")
	}

	var reqErr *client.RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected a *RequestError, got %T", err)
	}
	if reqErr.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", reqErr.Status)
	}
	if reqErr.Message != "Product not found" {
		t.Errorf("message = %q", reqErr.Message)
	}
	if !client.IsStatus(err, http.StatusNotFound) {
		t.Error("IsStatus(404) = false")
	}
	if client.IsStatus(err, http.StatusForbidden) {
		t.Error("IsStatus(403) = true for a 404 error")
	}
}

func TestRequestErrorToleratesNonJSONBody(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}), client.Config{})

	_, err := c.ListCategories(context.Background())
	var reqErr *client.RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected a *RequestError, got %v", err)
	}
	if reqErr.Status != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", reqErr.Status)
	}
	if reqErr.Message != "" {
		t.Errorf("message = %q, want empty for a non-JSON body", reqErr.Message)
	}
}

func TestChangeProductStatusRejectsUnknownStatus(t *testing.T) {
	requests := 0
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}), client.Config{})

	if _, err := c.ChangeProductStatus(context.Background(), "p1", client.ProductStatus("archived")); err == nil {
		t.Fatal("expected an error for an unknown status")
	}
	if requests != 0 {
		t.Fatalf("a request was issued for an unknown status")
	}
}

func TestChangeProductStatusPath(t *testing.T) {
	var gotMethod, gotPath string
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"product": {"id": "p1", "status": "sold"}}`))
	}), client.Config{})

	product, err := c.ChangeProductStatus(context.Background(), "p1", client.StatusSold)
	if err != nil {
		t.Fatalf("change status: %v", err)
	}

	if gotMethod != http.MethodPatch {
		t.Errorf("method = %q, want PATCH", gotMethod)
	}
	if gotPath != "/products/p1/sold" {
		t.Errorf("path = %q, want /products/p1/sold", gotPath)
	}
	if product.Status != client.StatusSold {
		t.Errorf("status = %q", product.Status)
	}
}

func TestUploadAttachmentsSendsMultipartFiles(t *testing.T) {
	var filenames []string
	var contents []string
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/attachments" {
			t.Errorf("path = %q, want /attachments", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		for _, header := range r.MultipartForm.File["files"] {
			filenames = append(filenames, header.Filename)
			file, err := header.Open()
			if err != nil {
				t.Errorf("open part: %v", err)
				return
			}
			var sb bytes.Buffer
			if _, err := sb.ReadFrom(file); err != nil {
				t.Errorf("read part: %v", err)
			}
			_ = file.Close()
			contents = append(contents, sb.String())
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"attachments": [{"id": "a1", "url": "https://cdn/a1"}, {"id": "a2", "url": "https://cdn/a2"}]}`))
	}), client.Config{})

	attachments, err := c.UploadAttachments(context.Background(),
		client.File{Name: "front.png", Content: strings.NewReader("front-bytes")},
		client.File{Name: "side.png", Content: strings.NewReader("side-bytes")},
	)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if len(filenames) != 2 || filenames[0] != "front.png" || filenames[1] != "side.png" {
		t.Errorf("filenames = %v", filenames)
	}
	if len(contents) != 2 || contents[0] != "front-bytes" || contents[1] != "side-bytes" {
		t.Errorf("contents = %v", contents)
	}
	if len(attachments) != 2 || attachments[0].ID != "a1" || attachments[1].ID != "a2" {
		t.Errorf("attachments = %v", attachments)
	}
}

func TestUploadAttachmentsRequiresFiles(t *testing.T) {
	requests := 0
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}), client.Config{})

	if _, err := c.UploadAttachments(context.Background()); err == nil {
		t.Fatal("expected an error for an empty upload")
	}
	if requests != 0 {
		t.Fatal("a request was issued for an empty upload")
	}
}

func TestAuthenticateSellerStoresAccessToken(t *testing.T) {
	var gotAuth string
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sellers/sessions":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"accessToken": "session-token"}`))
		case "/sellers/me":
			gotAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"seller": {"id": "s1"}}`))
		}
	}), client.Config{})

	if err := c.AuthenticateSeller(context.Background(), client.Credentials{Email: "ada@example.com", Password: "secret-pass"}); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if _, err := c.GetProfile(context.Background()); err != nil {
		t.Fatalf("get profile: %v", err)
	}

	if gotAuth != "Bearer session-token" {
		t.Errorf("authorization = %q, want the learned token", gotAuth)
	}
}

func TestAuthenticateSellerToleratesEmptyBody(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}), client.Config{})

	if err := c.AuthenticateSeller(context.Background(), client.Credentials{Email: "ada@example.com", Password: "secret-pass"}); err != nil {
		t.Fatalf("authenticate with empty body: %v", err)
	}
}

func TestRequestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *client.RequestError
		want string
	}{
		{
			name: "transport failure",
			err:  &client.RequestError{Err: errors.New("connection refused")},
			want: "request failed: connection refused",
		},
		{
			name: "status with message",
			err:  &client.RequestError{Status: 404, Message: "Product not found"},
			want: "request failed with status 404: Product not found",
		},
		{
			name: "status without message",
			err:  &client.RequestError{Status: 500},
			want: "request failed with status 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProductStatus(t *testing.T) {
	tests := []struct {
		status   client.ProductStatus
		valid    bool
		terminal bool
	}{
		{client.StatusAvailable, true, false},
		{client.StatusSold, true, true},
		{client.StatusCancelled, true, true},
		{client.ProductStatus("archived"), false, false},
		{client.ProductStatus(""), false, false},
	}

	for _, tt := range tests {
		if got := tt.status.Valid(); got != tt.valid {
			t.Errorf("%q.Valid() = %v, want %v", tt.status, got, tt.valid)
		}
		if got := tt.status.IsTerminal(); got != tt.terminal {
			t.Errorf("%q.IsTerminal() = %v, want %v", tt.status, got, tt.terminal)
		}
	}
}
