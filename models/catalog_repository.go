package models

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogRepository struct {
	db       *gorm.DB
	validate *validator.Validate
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	v := validator.New()
	// Registration only fails for an empty tag or a nil func.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	// Postgres text columns reject NUL bytes and invalid UTF-8.
	_ = v.RegisterValidation("wellformed", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
	})

	return &CatalogRepository{
		db:       db,
		validate: v,
	}
}

// Create stores a new catalog record and returns it with its generated ID.
// A nil description is persisted as NULL.
func (r *CatalogRepository) Create(ctx context.Context, name string, description *string) (*Catalog, error) {
	catalog := Catalog{
		Name:        name,
		Description: description,
	}

	if err := r.validate.Struct(&catalog); err != nil {
		return nil, toValidationError(err)
	}

	if err := r.db.WithContext(ctx).Create(&catalog).Error; err != nil {
		return nil, &StorageError{Op: "create", Err: err}
	}

	return &catalog, nil
}

func (r *CatalogRepository) GetByID(ctx context.Context, id uuid.UUID) (*Catalog, error) {
	var catalog Catalog
	if err := r.db.WithContext(ctx).First(&catalog, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCatalogNotFound
		}
		return nil, &StorageError{Op: "get", Err: err}
	}
	return &catalog, nil
}

func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Field: "catalog", Reason: err.Error()}
	}

	fe := fieldErrs[0]
	reason := "failed " + fe.Tag() + " check"
	switch fe.Tag() {
	case "notblank":
		reason = "must not be blank"
	case "wellformed":
		reason = "must be valid UTF-8 without NUL characters"
	}
	return &ValidationError{
		Field:  strings.ToLower(fe.Field()),
		Reason: reason,
	}
}
