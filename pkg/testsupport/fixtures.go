package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/sellerhub/go-seller-console/client"
)

// LoadFixture loads test data from a fixture file.
// The path is relative to the test package directory.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture from %s: %v", path, err)
	}

	return data
}

// LoadFixtureJSON loads JSON test data from a fixture file and unmarshals it.
func LoadFixtureJSON(t *testing.T, path string, dest any) {
	t.Helper()

	data := LoadFixture(t, path)
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("failed to unmarshal JSON fixture from %s: %v", path, err)
	}
}

// FixturePath constructs a path to a fixture file relative to the testdata
// directory.
func FixturePath(filename string) string {
	return filepath.Join("testdata", filename)
}

// NewSeller builds a seller profile with generated ids.
func NewSeller() client.Seller {
	return client.Seller{
		ID:    uuid.NewString(),
		Name:  "Ada Vendor",
		Phone: "+1 555 0100",
		Email: "ada@example.com",
		Avatar: &client.Attachment{
			ID:  uuid.NewString(),
			URL: "https://cdn.example.com/avatars/ada.png",
		},
	}
}

// NewCategory builds a category reference.
func NewCategory(title, slug string) client.Category {
	return client.Category{
		ID:    uuid.NewString(),
		Title: title,
		Slug:  slug,
	}
}

// NewProduct builds a product listing owned by a generated seller.
func NewProduct(title string, status client.ProductStatus) client.Product {
	return client.Product{
		ID:           uuid.NewString(),
		Title:        title,
		Description:  "A " + title + " in very good shape.",
		PriceInCents: 12990,
		Status:       status,
		Owner:        NewSeller(),
		Category:     NewCategory("Furniture", "furniture"),
		Attachments: []client.Attachment{
			{ID: uuid.NewString(), URL: "https://cdn.example.com/products/1.png"},
		},
	}
}
