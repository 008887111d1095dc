package leads_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modonevolutio/modon/internal/leads"
	"github.com/modonevolutio/modon/internal/platform/constants"
	"github.com/modonevolutio/modon/internal/platform/dberr"
	"github.com/modonevolutio/modon/pkg/pointer"
)

// memoryRepository is an in-memory stand-in for the Postgres store.
type memoryRepository struct {
	byID map[string]*leads.Lead
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{byID: make(map[string]*leads.Lead)}
}

func (r *memoryRepository) Create(_ context.Context, lead *leads.Lead) error {
	clone := *lead
	r.byID[lead.ID] = &clone
	return nil
}

func (r *memoryRepository) List(_ context.Context, status string, limit, offset int) ([]*leads.Lead, int, error) {
	var out []*leads.Lead
	for _, lead := range r.byID {
		if status == "" || lead.Status == status {
			out = append(out, lead)
		}
	}
	return out, len(out), nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*leads.Lead, error) {
	lead, ok := r.byID[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return lead, nil
}

func (r *memoryRepository) UpdateStatus(_ context.Context, id, status string) error {
	lead, ok := r.byID[id]
	if !ok {
		return dberr.ErrNotFound
	}
	lead.Status = status
	return nil
}

func newTestService(t *testing.T) (*leads.Service, *memoryRepository) {
	t.Helper()

	repo := newMemoryRepository()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return leads.NewService(repo, log), repo
}

func validInquiry() leads.SubmitInput {
	return leads.SubmitInput{
		Name:    "Fatima Al Mansouri",
		Email:   "fatima@example.com",
		Phone:   "+971501234567",
		Message: "I would like a viewing of the Marina Bay penthouse this week.",
		Locale:  "ar",
	}
}

// # Submission

func TestService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("valid_inquiry", func(t *testing.T) {
		service, repo := newTestService(t)

		lead, err := service.Submit(ctx, validInquiry())
		require.NoError(t, err)

		assert.NotEmpty(t, lead.ID)
		assert.Equal(t, leads.StatusNew, lead.Status)
		assert.Equal(t, "ar", lead.Locale)

		stored, err := repo.GetByID(ctx, lead.ID)
		require.NoError(t, err)
		assert.Equal(t, lead.Email, stored.Email)
	})

	t.Run("unknown_locale_defaults_to_english", func(t *testing.T) {
		service, _ := newTestService(t)
		input := validInquiry()
		input.Locale = "fr"

		lead, err := service.Submit(ctx, input)
		require.NoError(t, err)

		assert.Equal(t, constants.DefaultLocale, lead.Locale)
	})

	t.Run("empty_property_reference_normalized_to_nil", func(t *testing.T) {
		service, _ := newTestService(t)
		input := validInquiry()
		input.PropertyID = pointer.To("")

		lead, err := service.Submit(ctx, input)
		require.NoError(t, err)

		assert.Nil(t, lead.PropertyID)
	})

	t.Run("malformed_property_reference_rejected", func(t *testing.T) {
		service, _ := newTestService(t)
		input := validInquiry()
		input.PropertyID = pointer.To("not-a-uuid")

		_, err := service.Submit(ctx, input)
		assert.Error(t, err)
	})

	t.Run("missing_contact_details_rejected", func(t *testing.T) {
		service, _ := newTestService(t)
		input := validInquiry()
		input.Name = ""
		input.Email = "not-an-email"

		_, err := service.Submit(ctx, input)
		assert.Error(t, err)
	})
}

// # Back-office

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("valid_transition", func(t *testing.T) {
		service, repo := newTestService(t)
		lead, err := service.Submit(ctx, validInquiry())
		require.NoError(t, err)

		require.NoError(t, service.UpdateStatus(ctx, lead.ID, leads.StatusContacted))

		stored, err := repo.GetByID(ctx, lead.ID)
		require.NoError(t, err)
		assert.Equal(t, leads.StatusContacted, stored.Status)
	})

	t.Run("unknown_status_rejected", func(t *testing.T) {
		service, _ := newTestService(t)
		lead, err := service.Submit(ctx, validInquiry())
		require.NoError(t, err)

		assert.Error(t, service.UpdateStatus(ctx, lead.ID, "archived"))
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	_, err := service.Submit(ctx, validInquiry())
	require.NoError(t, err)

	t.Run("filter_by_status", func(t *testing.T) {
		listed, total, err := service.List(ctx, leads.StatusNew, 20, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, listed, 1)
	})

	t.Run("rejects_unknown_filter", func(t *testing.T) {
		_, _, err := service.List(ctx, "spam", 20, 0)
		assert.Error(t, err)
	})
}
