package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// Response envelopes. The backend wraps every payload in a named field.
type (
	productsResponse struct {
		Products []Product `json:"products"`
	}
	productResponse struct {
		Product Product `json:"product"`
	}
	categoriesResponse struct {
		Categories []Category `json:"categories"`
	}
	attachmentsResponse struct {
		Attachments []Attachment `json:"attachments"`
	}
	sellerResponse struct {
		Seller Seller `json:"seller"`
	}
	amountResponse struct {
		Amount int64 `json:"amount"`
	}
	viewsPerDayResponse struct {
		ViewsPerDay []DayViews `json:"viewsPerDay"`
	}
	sessionResponse struct {
		AccessToken string `json:"accessToken"`
	}
)

// ListProductsQuery filters the seller's product list. Nil fields are omitted
// from the request entirely, matching the backend's optional query params.
type ListProductsQuery struct {
	Search *string
	Status *string
}

// ListProducts returns the authenticated seller's products, optionally
// filtered by a title search and a status.
func (c *Client) ListProducts(ctx context.Context, q ListProductsQuery) ([]Product, error) {
	query := url.Values{}
	if q.Search != nil {
		query.Set("search", *q.Search)
	}
	if q.Status != nil {
		query.Set("status", *q.Status)
	}

	var resp productsResponse
	if err := c.do(ctx, http.MethodGet, "/products/me", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// GetProduct returns a single product by id.
func (c *Client) GetProduct(ctx context.Context, productID string) (Product, error) {
	var resp productResponse
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(productID), nil, nil, &resp); err != nil {
		return Product{}, err
	}
	return resp.Product, nil
}

// ProductInput is the payload shared by the create and edit operations.
type ProductInput struct {
	Title          string   `json:"title"`
	CategoryID     string   `json:"categoryId"`
	Description    string   `json:"description"`
	PriceInCents   int64    `json:"priceInCents"`
	AttachmentsIDs []string `json:"attachmentsIds"`
}

// CreateProduct registers a new listing and returns it as the backend stored it.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (Product, error) {
	var resp productResponse
	if err := c.do(ctx, http.MethodPost, "/products", nil, input, &resp); err != nil {
		return Product{}, err
	}
	return resp.Product, nil
}

// EditProduct replaces the mutable fields of an existing listing.
func (c *Client) EditProduct(ctx context.Context, productID string, input ProductInput) (Product, error) {
	var resp productResponse
	if err := c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(productID), nil, input, &resp); err != nil {
		return Product{}, err
	}
	return resp.Product, nil
}

// ChangeProductStatus transitions a listing to the target status. The backend
// is the authority on permitted transitions; a rejected one surfaces as a
// normal RequestError.
func (c *Client) ChangeProductStatus(ctx context.Context, productID string, status ProductStatus) (Product, error) {
	if !status.Valid() {
		return Product{}, fmt.Errorf("client: unknown product status %q", status)
	}

	path := "/products/" + url.PathEscape(productID) + "/" + string(status)
	var resp productResponse
	if err := c.do(ctx, http.MethodPatch, path, nil, nil, &resp); err != nil {
		return Product{}, err
	}
	return resp.Product, nil
}

// ListCategories returns the marketplace category reference data.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var resp categoriesResponse
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// UploadAttachments uploads one or more files and returns their stored
// references in order.
func (c *Client) UploadAttachments(ctx context.Context, files ...File) ([]Attachment, error) {
	if len(files) == 0 {
		return nil, errors.New("client: no files to upload")
	}

	var resp attachmentsResponse
	if err := c.upload(ctx, "/attachments", files, &resp); err != nil {
		return nil, err
	}
	return resp.Attachments, nil
}

// RegisterSellerInput is the sign-up payload.
type RegisterSellerInput struct {
	Name                 string `json:"name"`
	Phone                string `json:"phone"`
	Email                string `json:"email"`
	AvatarID             string `json:"avatarId"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
}

// RegisterSeller creates a seller account. The response body is not required.
func (c *Client) RegisterSeller(ctx context.Context, input RegisterSellerInput) error {
	return c.do(ctx, http.MethodPost, "/sellers", nil, input, nil)
}

// Credentials authenticate a seller session.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthenticateSeller starts a session. The backend sets a session cookie,
// which the internal jar keeps; when it also returns an access token, the
// token is attached to subsequent requests.
func (c *Client) AuthenticateSeller(ctx context.Context, creds Credentials) error {
	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, "/sellers/sessions", nil, creds, &resp); err != nil {
		return err
	}
	if resp.AccessToken != "" {
		c.token = resp.AccessToken
	}
	return nil
}

// SignOut ends the current session.
func (c *Client) SignOut(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/sign-out", nil, nil, nil)
}

// GetProfile returns the authenticated seller's profile.
func (c *Client) GetProfile(ctx context.Context) (Seller, error) {
	var resp sellerResponse
	if err := c.do(ctx, http.MethodGet, "/sellers/me", nil, nil, &resp); err != nil {
		return Seller{}, err
	}
	return resp.Seller, nil
}

// AvailableProductsCount returns how many of the seller's listings are
// available in the metrics window.
func (c *Client) AvailableProductsCount(ctx context.Context) (int64, error) {
	return c.amount(ctx, "/sellers/metrics/products/available")
}

// SoldProductsCount returns how many listings were sold in the metrics window.
func (c *Client) SoldProductsCount(ctx context.Context) (int64, error) {
	return c.amount(ctx, "/sellers/metrics/products/sold")
}

// ViewsCount returns the total listing views in the metrics window.
func (c *Client) ViewsCount(ctx context.Context) (int64, error) {
	return c.amount(ctx, "/sellers/metrics/views")
}

// ViewsPerDay returns the daily views series for the metrics window.
func (c *Client) ViewsPerDay(ctx context.Context) ([]DayViews, error) {
	var resp viewsPerDayResponse
	if err := c.do(ctx, http.MethodGet, "/sellers/metrics/views/days", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.ViewsPerDay, nil
}

func (c *Client) amount(ctx context.Context, path string) (int64, error) {
	var resp amountResponse
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Amount, nil
}
