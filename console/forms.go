package console

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/sellerhub/go-seller-console/client"
)

// emailPattern keeps the same loose shape the backend accepts.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidationError carries the per-field messages of a failed form validation.
// It is produced before any request is issued and never reaches the notifier;
// the form layer renders the messages inline.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		names = append(names, field)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// asValidationError converts ozzo's error map into field-level messages.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}

	fields := make(map[string]string, len(errs))
	for field, fieldErr := range errs {
		fields[field] = fieldErr.Error()
	}
	return &ValidationError{Fields: fields}
}

// requireFile rejects a File without content. Used for the image inputs the
// backend requires on create and sign-up.
func requireFile(value any) error {
	file, ok := value.(client.File)
	if !ok || file.Content == nil {
		return errors.New("an image file is required")
	}
	return nil
}

// CreateProductForm is the validated input of the create flow.
type CreateProductForm struct {
	Title        string
	Description  string
	CategoryID   string
	PriceInCents int64
	Image        client.File
}

func (f CreateProductForm) Validate() error {
	return asValidationError(validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required),
		validation.Field(&f.Description, validation.Required),
		validation.Field(&f.CategoryID, validation.Required),
		validation.Field(&f.PriceInCents, validation.Required, validation.Min(int64(1))),
		validation.Field(&f.Image, validation.By(requireFile)),
	))
}

// EditProductForm is the validated input of the edit flow. AttachmentIDs are
// the product's existing attachments; NewImage, when set, is uploaded and
// appended to them.
type EditProductForm struct {
	Title         string
	Description   string
	CategoryID    string
	PriceInCents  int64
	AttachmentIDs []string
	NewImage      *client.File
}

func (f EditProductForm) Validate() error {
	return asValidationError(validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required),
		validation.Field(&f.Description, validation.Required),
		validation.Field(&f.CategoryID, validation.Required),
		validation.Field(&f.PriceInCents, validation.Required, validation.Min(int64(1))),
		validation.Field(&f.AttachmentIDs,
			validation.Required.When(f.NewImage == nil).Error("a product image is required")),
	))
}

// SignUpForm is the validated input of the registration flow.
type SignUpForm struct {
	Name                 string
	Phone                string
	Email                string
	Password             string
	PasswordConfirmation string
	Avatar               client.File
}

func (f SignUpForm) Validate() error {
	return asValidationError(validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required),
		validation.Field(&f.Phone, validation.Required),
		validation.Field(&f.Email, validation.Required,
			validation.Match(emailPattern).Error("must be a valid email address")),
		validation.Field(&f.Password, validation.Required, validation.Length(8, 0)),
		validation.Field(&f.PasswordConfirmation, validation.Required,
			validation.In(f.Password).Error("passwords do not match")),
		validation.Field(&f.Avatar, validation.By(requireFile)),
	))
}

// SignInForm is the validated input of the authentication flow.
type SignInForm struct {
	Email    string
	Password string
}

func (f SignInForm) Validate() error {
	return asValidationError(validation.ValidateStruct(&f,
		validation.Field(&f.Email, validation.Required,
			validation.Match(emailPattern).Error("must be a valid email address")),
		validation.Field(&f.Password, validation.Required),
	))
}
