package console

import (
	"context"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/sellerhub/go-seller-console/cache"
	"github.com/sellerhub/go-seller-console/client"
)

// Resource names form the first segment of every query key. Names must not be
// prefixes of each other; patching and invalidation address entries by them.
const (
	resourceProducts           = "Products"
	resourceProductDetails     = "ProductDetails"
	resourceCategories         = "Categories"
	resourceProfile            = "Profile"
	resourceMetricsAvailable   = "MetricsAvailableProducts"
	resourceMetricsSold        = "MetricsSoldProducts"
	resourceMetricsViews       = "MetricsViews"
	resourceMetricsViewsPerDay = "MetricsViewsPerDay"
)

// Console drives the seller dashboard data layer: cached resource reads plus
// the mutation flows that keep the query store in sync with the backend.
// Construct one per session at application start and pass it by reference;
// the query store it owns is the only session state.
type Console struct {
	api    *client.Client
	store  cache.QueryStore
	keys   cache.KeySerializer
	notify Notifier

	// loadedKeys registers every query key this console has populated, mapped
	// to its resource name, so mutations patch exactly the entries that hold
	// a loaded value and sign-out can drop them all.
	loadedKeys *xsync.MapOf[string, string]
}

// New wires a Console from its collaborators. A nil notifier falls back to
// the logging notifier.
func New(api *client.Client, store cache.QueryStore, keys cache.KeySerializer, notify Notifier) *Console {
	if notify == nil {
		notify = NewLogNotifier()
	}

	return &Console{
		api:        api,
		store:      store,
		keys:       keys,
		notify:     notify,
		loadedKeys: xsync.NewMapOf[string, string](),
	}
}

// trackKey registers a populated query key for later patching/invalidation.
func (c *Console) trackKey(key, resource string) {
	c.loadedKeys.Store(key, resource)
}

// Products returns the seller's product list for the given filters, serving
// the stored entry when one is loaded. Entries are patched, never refetched,
// after mutations.
func (c *Console) Products(ctx context.Context, query client.ListProductsQuery) ([]client.Product, error) {
	key := c.keys.SerializeKey(resourceProducts, query.Search, query.Status)
	c.trackKey(key, resourceProducts)
	return cache.GetOrFetch(ctx, c.store, key, func(ctx context.Context) ([]client.Product, error) {
		return c.api.ListProducts(ctx, query)
	})
}

// ProductDetails returns one product by id, served from the store once loaded.
func (c *Console) ProductDetails(ctx context.Context, productID string) (client.Product, error) {
	key := c.keys.SerializeKey(resourceProductDetails, productID)
	c.trackKey(key, resourceProductDetails)
	return cache.GetOrFetch(ctx, c.store, key, func(ctx context.Context) (client.Product, error) {
		return c.api.GetProduct(ctx, productID)
	})
}

// Categories returns the marketplace categories. The entry never goes stale:
// once loaded it is served from the store for the remainder of the session.
func (c *Console) Categories(ctx context.Context) ([]client.Category, error) {
	key := c.keys.SerializeKey(resourceCategories)
	c.trackKey(key, resourceCategories)
	return cache.GetOrFetch(ctx, c.store, key, func(ctx context.Context) ([]client.Category, error) {
		return c.api.ListCategories(ctx)
	})
}

// Profile returns the authenticated seller's profile. Like categories, it is
// loaded once per session.
func (c *Console) Profile(ctx context.Context) (client.Seller, error) {
	key := c.keys.SerializeKey(resourceProfile)
	c.trackKey(key, resourceProfile)
	return cache.GetOrFetch(ctx, c.store, key, func(ctx context.Context) (client.Seller, error) {
		return c.api.GetProfile(ctx)
	})
}

// AvailableProductsMetric returns the available-listings count for the
// metrics window.
func (c *Console) AvailableProductsMetric(ctx context.Context) (int64, error) {
	key := c.keys.SerializeKey(resourceMetricsAvailable)
	c.trackKey(key, resourceMetricsAvailable)
	return cache.GetOrFetch(ctx, c.store, key, func(ctx context.Context) (int64, error) {
		return c.api.AvailableProductsCount(ctx)
	})
}

// SoldProductsMetric returns the sold-listings count for the metrics window.
func (c *Console) SoldProductsMetric(ctx context.Context) (int64, error) {
	key := c.keys.SerializeKey(resourceMetricsSold)
	c.trackKey(key, resourceMetricsSold)
	return cache.GetOrFetch(ctx, c.store, key, func(ctx context.Context) (int64, error) {
		return c.api.SoldProductsCount(ctx)
	})
}

// ViewsMetric returns the total views count for the metrics window.
func (c *Console) ViewsMetric(ctx context.Context) (int64, error) {
	key := c.keys.SerializeKey(resourceMetricsViews)
	c.trackKey(key, resourceMetricsViews)
	return cache.GetOrFetch(ctx, c.store, key, func(ctx context.Context) (int64, error) {
		return c.api.ViewsCount(ctx)
	})
}

// ViewsPerDayMetric returns the daily views series for the metrics window.
func (c *Console) ViewsPerDayMetric(ctx context.Context) ([]client.DayViews, error) {
	key := c.keys.SerializeKey(resourceMetricsViewsPerDay)
	c.trackKey(key, resourceMetricsViewsPerDay)
	return cache.GetOrFetch(ctx, c.store, key, func(ctx context.Context) ([]client.DayViews, error) {
		return c.api.ViewsPerDay(ctx)
	})
}

// patchProductLists applies patch to every loaded product-list entry. The
// writes happen sequentially before the caller returns, so no reader observes
// a mutation applied to some entries and not others. Entries are patched on a
// copy; slices already handed to readers stay untouched.
func (c *Console) patchProductLists(ctx context.Context, patch func([]client.Product) []client.Product) {
	c.loadedKeys.Range(func(key, resource string) bool {
		if resource != resourceProducts {
			return true
		}
		products, ok := cache.Read[[]client.Product](ctx, c.store, key)
		if !ok {
			return true
		}
		c.store.Write(ctx, key, patch(cloneProducts(products)))
		return true
	})
}

// patchProductDetails applies patch to the detail entry for productID when
// one is loaded.
func (c *Console) patchProductDetails(ctx context.Context, productID string, patch func(client.Product) client.Product) {
	key := c.keys.SerializeKey(resourceProductDetails, productID)
	product, ok := cache.Read[client.Product](ctx, c.store, key)
	if !ok || product.ID != productID {
		return
	}
	c.store.Write(ctx, key, patch(product))
}

// writeProductDetails overwrites the detail entry for product with the
// server-returned value.
func (c *Console) writeProductDetails(ctx context.Context, product client.Product) {
	key := c.keys.SerializeKey(resourceProductDetails, product.ID)
	c.trackKey(key, resourceProductDetails)
	c.store.Write(ctx, key, product)
}

func cloneProducts(products []client.Product) []client.Product {
	out := make([]client.Product, len(products))
	copy(out, products)
	return out
}
