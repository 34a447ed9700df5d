package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront/internal/imageutil"
	"storefront/internal/models"
	"storefront/internal/productutil"
	"storefront/internal/repositories"
)

// RelatedLimit is how many related products are returned at most.
const RelatedLimit = 4

var (
	defaultSizes  = []string{"S", "M", "L", "XL"}
	defaultColors = []string{"Black", "White", "Red", "Blue"}
)

const skuAttempts = 5

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	preloader imageutil.Preloader
	logger    *slog.Logger
	now       func() time.Time
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, preloader imageutil.Preloader, logger *slog.Logger) *ProductService {
	if preloader == nil {
		preloader = imageutil.NopPreloader{}
	}
	return &ProductService{
		repo:      repo,
		preloader: preloader,
		logger:    logger,
		now:       time.Now,
	}
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Products []models.Product `json:"products"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
	Total    int64            `json:"total"`
}

// ProductInput holds the fields an admin supplies when creating a product.
type ProductInput struct {
	Title           string
	Description     string
	LongDescription string
	Images          []string
	Price           float64
	CountInStock    int
	Category        string
	Sizes           []string
	Colors          []string
	Featured        bool
}

// ProductPatch carries a partial product update. A nil field is left as is,
// so zero and false can be set explicitly.
type ProductPatch struct {
	Title           *string
	Description     *string
	LongDescription *string
	Images          *[]string
	Price           *float64
	CountInStock    *int
	Category        *string
	Sizes           *[]string
	Colors          *[]string
	Featured        *bool
}

// List returns the requested page of products and the pagination totals.
func (s *ProductService) List(ctx context.Context, f repositories.ProductFilter) (*ProductPage, error) {
	f = f.Normalize()
	products, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return &ProductPage{
		Products: products,
		Page:     f.Page,
		Pages:    int(math.Ceil(float64(total) / float64(f.Limit))),
		Total:    total,
	}, nil
}

// Get retrieves a single product by its ID.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores a new product owned by adminID, filling in defaults and a unique SKU.
func (s *ProductService) Create(ctx context.Context, adminID string, in ProductInput) (*models.Product, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" || strings.TrimSpace(in.Category) == "" {
		return nil, fmt.Errorf("%w: title, description and category are required", ErrValidation)
	}
	if in.Price < 0 || in.CountInStock < 0 {
		return nil, fmt.Errorf("%w: price and countInStock must not be negative", ErrValidation)
	}

	p := &models.Product{
		User:            adminID,
		Title:           strings.TrimSpace(in.Title),
		Description:     in.Description,
		LongDescription: in.LongDescription,
		Images:          nonEmpty(in.Images, []string{imageutil.Placeholder}),
		Price:           in.Price,
		CountInStock:    in.CountInStock,
		Category:        strings.TrimSpace(in.Category),
		Sizes:           nonEmpty(in.Sizes, defaultSizes),
		Colors:          nonEmpty(in.Colors, defaultColors),
		Featured:        in.Featured,
		Reviews:         []models.Review{},
	}
	if p.LongDescription == "" {
		p.LongDescription = p.Description
	}

	for attempt := 0; ; attempt++ {
		sku, err := s.uniqueSKU(ctx)
		if err != nil {
			return nil, err
		}
		p.SKU = sku
		err = s.repo.Create(ctx, p)
		if err == nil {
			break
		}
		// Another writer took the SKU between the check and the insert.
		if errors.Is(err, repositories.ErrDuplicate) && attempt < skuAttempts {
			p.ID = ""
			continue
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.InfoContext(ctx, "product created", "product_id", p.ID, "sku", p.SKU)
	s.warm(p)
	return p, nil
}

func (s *ProductService) uniqueSKU(ctx context.Context) (string, error) {
	for i := 0; i < skuAttempts; i++ {
		sku := productutil.NewSKU(s.now())
		exists, err := s.repo.SKUExists(ctx, sku)
		if err != nil {
			return "", err
		}
		if !exists {
			return sku, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique sku after %d attempts", skuAttempts)
}

// Update applies the non-nil fields of patch to product id.
func (s *ProductService) Update(ctx context.Context, id string, patch ProductPatch) (*models.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := setRequired(&p.Title, patch.Title, "title"); err != nil {
		return nil, err
	}
	if err := setRequired(&p.Description, patch.Description, "description"); err != nil {
		return nil, err
	}
	if err := setRequired(&p.Category, patch.Category, "category"); err != nil {
		return nil, err
	}
	switch {
	case patch.LongDescription != nil:
		p.LongDescription = *patch.LongDescription
	case patch.Description != nil:
		p.LongDescription = *patch.Description
	}
	if patch.Images != nil {
		p.Images = *patch.Images
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
		}
		p.Price = *patch.Price
	}
	if patch.CountInStock != nil {
		if *patch.CountInStock < 0 {
			return nil, fmt.Errorf("%w: countInStock must not be negative", ErrValidation)
		}
		p.CountInStock = *patch.CountInStock
	}
	if patch.Sizes != nil {
		p.Sizes = *patch.Sizes
	}
	if patch.Colors != nil {
		p.Colors = *patch.Colors
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	s.warm(p)
	return p, nil
}

func setRequired(dst *string, v *string, field string) error {
	if v == nil {
		return nil
	}
	if strings.TrimSpace(*v) == "" {
		return fmt.Errorf("%w: %s must not be empty", ErrValidation, field)
	}
	*dst = *v
	return nil
}

// Delete deletes a product by its ID.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "product deleted", "product_id", id)
	return nil
}

// AddReview appends a review by user and recomputes the rating.
// The duplicate check and the write are not atomic.
func (s *ProductService) AddReview(ctx context.Context, productID string, user *models.User, rating int, comment string) (*models.Product, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.HasReviewFrom(user.ID) {
		return nil, ErrAlreadyReviewed
	}

	p.Reviews = append(p.Reviews, models.Review{
		ID:        uuid.New().String(),
		User:      user.ID,
		Name:      user.Name,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: s.now(),
	})
	p.RecalculateRating()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}
	return p, nil
}

// Related returns up to RelatedLimit other products from the same category.
func (s *ProductService) Related(ctx context.Context, id string) ([]models.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	related, err := s.repo.ListRelated(ctx, p.Category, p.ID, RelatedLimit)
	if err != nil {
		return nil, err
	}
	if related == nil {
		related = []models.Product{}
	}
	return related, nil
}

func (s *ProductService) warm(p *models.Product) {
	if urls := imageutil.Variants(p.Images, imageutil.Card, imageutil.Detail); len(urls) > 0 {
		s.preloader.Preload(urls...)
	}
}

func nonEmpty(v, fallback []string) []string {
	if len(v) == 0 {
		return append([]string(nil), fallback...)
	}
	return v
}
