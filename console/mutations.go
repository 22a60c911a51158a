package console

import (
	"context"
	"errors"

	"github.com/sellerhub/go-seller-console/client"
	"github.com/sellerhub/go-seller-console/pkg/logger"
)

// ErrInvalidCredentials is returned by SignIn for any authentication failure.
// The backend's own error detail is deliberately not surfaced to the user.
var ErrInvalidCredentials = errors.New("console: invalid credentials")

// errNoAttachments covers a backend that accepted an upload but returned no
// attachment references; the flow cannot continue without an id.
var errNoAttachments = errors.New("console: upload returned no attachments")

// CreateProduct runs the create flow: upload the selected image, create the
// product with the returned attachment id, then append the new product to
// every product-list entry already loaded this session. Lists never fetched
// stay absent and load fresh, including the product, on first read.
//
// A failed step aborts the remaining ones: nothing is written to the store,
// an error notification fires and the error is returned so the form stays
// editable for a retry. An attachment uploaded before a failed create is not
// cleaned up; the backend keeps it orphaned.
func (c *Console) CreateProduct(ctx context.Context, form CreateProductForm) (client.Product, error) {
	if err := form.Validate(); err != nil {
		return client.Product{}, err
	}

	attachments, err := c.api.UploadAttachments(ctx, form.Image)
	if err != nil {
		c.notify.Error("Could not upload the product image.")
		return client.Product{}, err
	}

	product, err := c.api.CreateProduct(ctx, client.ProductInput{
		Title:          form.Title,
		CategoryID:     form.CategoryID,
		Description:    form.Description,
		PriceInCents:   form.PriceInCents,
		AttachmentsIDs: attachmentIDs(attachments),
	})
	if err != nil {
		c.notify.Error("Could not create the product.")
		return client.Product{}, err
	}

	c.patchProductLists(ctx, func(products []client.Product) []client.Product {
		return append(products, product)
	})

	c.notify.Success("Product created.")
	return product, nil
}

// EditProduct runs the edit flow. When a new image was selected it is
// uploaded first and its id appended to the existing attachment ids;
// otherwise the existing ids are reused unchanged. On success the
// server-returned product replaces the matching entry in every loaded list
// and overwrites the detail entry.
func (c *Console) EditProduct(ctx context.Context, productID string, form EditProductForm) (client.Product, error) {
	if err := form.Validate(); err != nil {
		return client.Product{}, err
	}

	ids := append([]string(nil), form.AttachmentIDs...)
	if form.NewImage != nil {
		uploaded, err := c.api.UploadAttachments(ctx, *form.NewImage)
		if err != nil {
			c.notify.Error("Could not upload the product image.")
			return client.Product{}, err
		}
		ids = append(ids, attachmentIDs(uploaded)...)
	}

	product, err := c.api.EditProduct(ctx, productID, client.ProductInput{
		Title:          form.Title,
		CategoryID:     form.CategoryID,
		Description:    form.Description,
		PriceInCents:   form.PriceInCents,
		AttachmentsIDs: ids,
	})
	if err != nil {
		c.notify.Error("Could not save the product.")
		return client.Product{}, err
	}

	c.patchProductLists(ctx, func(products []client.Product) []client.Product {
		for i := range products {
			if products[i].ID == product.ID {
				products[i] = product
			}
		}
		return products
	})
	c.writeProductDetails(ctx, product)

	c.notify.Success("Product updated.")
	return product, nil
}

// ChangeProductStatus transitions a product and patches only the status field
// of every store entry containing it, leaving all other fields untouched.
// The caller (presentation) only offers the action on non-terminal statuses;
// the backend remains the authority and a rejection surfaces as a normal
// request failure.
func (c *Console) ChangeProductStatus(ctx context.Context, productID string, status client.ProductStatus) (client.Product, error) {
	product, err := c.api.ChangeProductStatus(ctx, productID, status)
	if err != nil {
		c.notify.Error("Could not change the product status.")
		return client.Product{}, err
	}

	c.patchProductLists(ctx, func(products []client.Product) []client.Product {
		for i := range products {
			if products[i].ID == product.ID {
				products[i].Status = product.Status
			}
		}
		return products
	})
	c.patchProductDetails(ctx, product.ID, func(p client.Product) client.Product {
		p.Status = product.Status
		return p
	})

	c.notify.Success("Product status updated.")
	return product, nil
}

// SignUp runs the registration flow: upload the avatar image, then register
// the seller with the returned attachment id. No store writes happen; there
// is no session yet.
func (c *Console) SignUp(ctx context.Context, form SignUpForm) error {
	if err := form.Validate(); err != nil {
		return err
	}

	attachments, err := c.api.UploadAttachments(ctx, form.Avatar)
	if err != nil {
		c.notify.Error("Could not upload the avatar image.")
		return err
	}
	if len(attachments) == 0 {
		c.notify.Error("Could not upload the avatar image.")
		return errNoAttachments
	}

	if err := c.api.RegisterSeller(ctx, client.RegisterSellerInput{
		Name:                 form.Name,
		Phone:                form.Phone,
		Email:                form.Email,
		AvatarID:             attachments[0].ID,
		Password:             form.Password,
		PasswordConfirmation: form.PasswordConfirmation,
	}); err != nil {
		c.notify.Error("Could not create your account.")
		return err
	}

	c.notify.Success("Account created. You can sign in now.")
	return nil
}

// SignIn authenticates the seller. Any failure surfaces as a generic
// invalid-credentials notification; the backend detail is logged, not shown.
func (c *Console) SignIn(ctx context.Context, form SignInForm) error {
	if err := form.Validate(); err != nil {
		return err
	}

	if err := c.api.AuthenticateSeller(ctx, client.Credentials{
		Email:    form.Email,
		Password: form.Password,
	}); err != nil {
		logger.Debug("sign-in failed: %v", err)
		c.notify.Error("Invalid credentials.")
		return ErrInvalidCredentials
	}

	c.notify.Success("Signed in.")
	return nil
}

// SignOut ends the session and drops every query entry loaded during it.
func (c *Console) SignOut(ctx context.Context) error {
	if err := c.api.SignOut(ctx); err != nil {
		c.notify.Error("Could not sign out.")
		return err
	}

	c.loadedKeys.Range(func(key, _ string) bool {
		_ = c.store.Delete(ctx, key)
		c.loadedKeys.Delete(key)
		return true
	})

	c.notify.Success("Signed out.")
	return nil
}

func attachmentIDs(attachments []client.Attachment) []string {
	ids := make([]string, len(attachments))
	for i, a := range attachments {
		ids[i] = a.ID
	}
	return ids
}
