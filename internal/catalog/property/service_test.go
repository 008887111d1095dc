package property_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modonevolutio/modon/internal/catalog/property"
	"github.com/modonevolutio/modon/internal/platform/dberr"
)

// memoryRepository is an in-memory stand-in for the Postgres store.
type memoryRepository struct {
	byID   map[string]*property.Property
	images map[string][]property.Image
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		byID:   make(map[string]*property.Property),
		images: make(map[string][]property.Image),
	}
}

func (r *memoryRepository) ListPublished(_ context.Context, limit, offset int) ([]*property.Property, int, error) {
	var out []*property.Property
	for _, p := range r.byID {
		if p.IsPublished {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func (r *memoryRepository) ListAll(_ context.Context, limit, offset int) ([]*property.Property, int, error) {
	var out []*property.Property
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (r *memoryRepository) GetBySlug(_ context.Context, slug string) (*property.Property, error) {
	for _, p := range r.byID {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*property.Property, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return p, nil
}

func (r *memoryRepository) Create(_ context.Context, p *property.Property) error {
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *memoryRepository) Update(_ context.Context, p *property.Property) error {
	if _, ok := r.byID[p.ID]; !ok {
		return dberr.ErrNotFound
	}
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *memoryRepository) SetPublished(_ context.Context, id string, published bool) error {
	p, ok := r.byID[id]
	if !ok {
		return dberr.ErrNotFound
	}
	p.IsPublished = published
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memoryRepository) ListImages(_ context.Context, propertyID string) ([]property.Image, error) {
	return r.images[propertyID], nil
}

func (r *memoryRepository) AddImage(_ context.Context, image *property.Image) error {
	r.images[image.PropertyID] = append(r.images[image.PropertyID], *image)
	return nil
}

func (r *memoryRepository) RemoveImage(_ context.Context, propertyID, imageID string) error {
	kept := r.images[propertyID][:0]
	for _, img := range r.images[propertyID] {
		if img.ID != imageID {
			kept = append(kept, img)
		}
	}
	r.images[propertyID] = kept
	return nil
}

func newTestService(t *testing.T) (*property.Service, *memoryRepository) {
	t.Helper()

	repo := newMemoryRepository()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return property.NewService(repo, log), repo
}

func validListing() *property.Property {
	return &property.Property{
		TitleEn:      "Marina Bay Penthouse",
		TitleAr:      "بنتهاوس خليج المارينا",
		LocationEn:   "Dubai Marina",
		LocationAr:   "مرسى دبي",
		Price:        4500000,
		Currency:     "AED",
		Bedrooms:     3,
		Bathrooms:    4,
		AreaSqm:      410,
		PropertyType: property.TypeApartment,
	}
}

// # Create

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("valid_listing", func(t *testing.T) {
		service, repo := newTestService(t)
		listing := validListing()

		require.NoError(t, service.Create(ctx, listing))

		assert.NotEmpty(t, listing.ID)
		assert.Equal(t, property.StatusAvailable, listing.Status)

		stored, err := repo.GetByID(ctx, listing.ID)
		require.NoError(t, err)
		assert.Equal(t, listing.Slug, stored.Slug)
	})

	t.Run("slug_combines_title_and_id_tail", func(t *testing.T) {
		service, _ := newTestService(t)
		listing := validListing()

		require.NoError(t, service.Create(ctx, listing))

		tail := listing.ID[len(listing.ID)-8:]
		assert.Equal(t, "marina-bay-penthouse-"+tail, listing.Slug)
	})

	t.Run("arabic_title_falls_back_to_id_tail", func(t *testing.T) {
		// Arabic script folds away entirely during slugification.
		service, _ := newTestService(t)
		listing := validListing()
		listing.TitleEn = "شقة فاخرة"

		require.NoError(t, service.Create(ctx, listing))

		assert.Equal(t, listing.ID[len(listing.ID)-8:], listing.Slug)
	})

	t.Run("symbol_only_title_slug_is_id_tail", func(t *testing.T) {
		service, _ := newTestService(t)
		listing := validListing()
		listing.TitleEn = "!!!"

		require.NoError(t, service.Create(ctx, listing))

		assert.Equal(t, listing.ID[len(listing.ID)-8:], listing.Slug)
		assert.False(t, strings.HasPrefix(listing.Slug, "-"))
	})

	t.Run("rejects_unknown_currency", func(t *testing.T) {
		service, _ := newTestService(t)
		listing := validListing()
		listing.Currency = "GBP"

		assert.Error(t, service.Create(ctx, listing))
	})

	t.Run("rejects_negative_price", func(t *testing.T) {
		service, _ := newTestService(t)
		listing := validListing()
		listing.Price = -1

		assert.Error(t, service.Create(ctx, listing))
	})

	t.Run("rejects_missing_bilingual_fields", func(t *testing.T) {
		service, _ := newTestService(t)
		listing := validListing()
		listing.TitleAr = ""
		listing.LocationAr = ""

		assert.Error(t, service.Create(ctx, listing))
	})
}

// # Update

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("slug_preserved_when_title_unchanged", func(t *testing.T) {
		service, _ := newTestService(t)
		listing := validListing()
		require.NoError(t, service.Create(ctx, listing))
		originalSlug := listing.Slug

		updated := validListing()
		updated.Price = 4750000
		require.NoError(t, service.Update(ctx, listing.ID, updated))

		assert.Equal(t, originalSlug, updated.Slug)
	})

	t.Run("retitle_recomputes_slug", func(t *testing.T) {
		service, _ := newTestService(t)
		listing := validListing()
		require.NoError(t, service.Create(ctx, listing))

		updated := validListing()
		updated.TitleEn = "Palm Jumeirah Penthouse"
		require.NoError(t, service.Update(ctx, listing.ID, updated))

		tail := listing.ID[len(listing.ID)-8:]
		assert.Equal(t, "palm-jumeirah-penthouse-"+tail, updated.Slug)
	})

	t.Run("unknown_listing", func(t *testing.T) {
		service, _ := newTestService(t)

		err := service.Update(ctx, "018f3b1a-0000-7000-8000-00000000dead", validListing())
		assert.ErrorIs(t, err, dberr.ErrNotFound)
	})
}

// # Publication

func TestService_SetPublished(t *testing.T) {
	ctx := context.Background()

	service, repo := newTestService(t)
	listing := validListing()
	require.NoError(t, service.Create(ctx, listing))

	require.NoError(t, service.SetPublished(ctx, listing.ID, true))
	stored, err := repo.GetByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsPublished)

	require.NoError(t, service.SetPublished(ctx, listing.ID, false))
	stored, err = repo.GetByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsPublished)
}

// # Gallery

func TestService_AddImage(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns_id", func(t *testing.T) {
		service, repo := newTestService(t)
		listing := validListing()
		require.NoError(t, service.Create(ctx, listing))

		image := &property.Image{
			PropertyID: listing.ID,
			URL:        "https://cdn.modonevolutio.com/listings/marina-bay/01.webp",
		}
		require.NoError(t, service.AddImage(ctx, image))
		assert.NotEmpty(t, image.ID)

		images, err := repo.ListImages(ctx, listing.ID)
		require.NoError(t, err)
		require.Len(t, images, 1)
	})

	t.Run("rejects_missing_url", func(t *testing.T) {
		service, _ := newTestService(t)

		err := service.AddImage(ctx, &property.Image{PropertyID: "p1"})
		assert.Error(t, err)
	})
}
