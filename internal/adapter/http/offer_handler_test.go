package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"testing"
	"time"

	domain "offer-marketplace/internal/domain/offer"
	offerUC "offer-marketplace/internal/usecase/offer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func validOfferBody() map[string]any {
	return map[string]any{
		"name":               "Farma PV Pomorze",
		"description":        "Instalacja 2 MW",
		"target_amount":      500000,
		"minimum_investment": 1000,
		"end_at":             time.Now().Add(30 * 24 * time.Hour).UTC().Format(time.RFC3339),
		"images":             []string{"https://cdn.example.com/a.jpg"},
	}
}

func storedOffer(status domain.Status) *domain.Offer {
	return &domain.Offer{
		ID:                offerID,
		Name:              "Farma PV Pomorze",
		TargetAmount:      50_000_000,
		MinimumInvestment: 100_000,
		EndAt:             time.Now().Add(24 * time.Hour).UTC(),
		Status:            status,
	}
}

func TestOfferCreate_Roles(t *testing.T) {
	s := newTestServer(t, "")

	rec := s.do(t, stdhttp.MethodPost, "/api/offers", validOfferBody(), "", nil)
	assert.Equal(t, stdhttp.StatusUnauthorized, rec.Code)

	rec = s.do(t, stdhttp.MethodPost, "/api/offers", validOfferBody(), s.signerToken(t), nil)
	assert.Equal(t, stdhttp.StatusForbidden, rec.Code)
	assert.Equal(t, "Nie masz uprawnień do wykonania tej operacji", decode(t, rec).Error)
}

func TestOfferCreate_Success(t *testing.T) {
	s := newTestServer(t, "")
	var created *domain.Offer
	var images []string
	s.offers.CreateFn = func(_ context.Context, o *domain.Offer) error { created = o; return nil }
	s.offers.CreateImagesFn = func(_ context.Context, _ string, urls []string) error { images = urls; return nil }

	rec := s.do(t, stdhttp.MethodPost, "/api/offers", validOfferBody(), s.adminToken(t), nil)
	require.Equal(t, stdhttp.StatusCreated, rec.Code, rec.Body.String())

	var dto offerUC.OfferDTO
	decodeData(t, rec, &dto)
	assert.Equal(t, "draft", dto.Status)
	assert.Equal(t, 500000.0, dto.TargetAmount)
	assert.Equal(t, 1000.0, dto.MinimumInvestment)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, dto.Images)

	require.NotNil(t, created)
	assert.Equal(t, int64(50_000_000), created.TargetAmount)
	assert.Equal(t, int64(100_000), created.MinimumInvestment)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, images)
}

func TestOfferCreate_ValidationDetails(t *testing.T) {
	s := newTestServer(t, "")
	s.offers.CreateFn = func(context.Context, *domain.Offer) error {
		t.Fatal("repository must not be called")
		return nil
	}

	body := validOfferBody()
	body["name"] = "ab"
	body["minimum_investment"] = 600000
	body["target_amount"] = 500000.123
	body["end_at"] = time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	body["images"] = []string{"not a url"}

	rec := s.do(t, stdhttp.MethodPost, "/api/offers", body, s.adminToken(t), nil)
	require.Equal(t, stdhttp.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "Nieprawidłowe dane", env.Error)
	assert.True(t, containsFieldMsg(env.Details, "name", "Minimalna długość"), "%+v", env.Details)
	assert.True(t, containsFieldMsg(env.Details, "target_amount", "2 miejsca"), "%+v", env.Details)
	assert.True(t, containsFieldMsg(env.Details, "minimum_investment", "target_amount"), "%+v", env.Details)
	assert.True(t, containsFieldMsg(env.Details, "end_at", "w przyszłości"), "%+v", env.Details)
	assert.True(t, containsFieldMsg(env.Details, "images[0]", "URL"), "%+v", env.Details)
}

func TestOfferCreate_BrokenJSON(t *testing.T) {
	s := newTestServer(t, "")
	rec := s.do(t, stdhttp.MethodPost, "/api/offers", `{"name":`, s.adminToken(t), nil)
	require.Equal(t, stdhttp.StatusBadRequest, rec.Code)
	assert.Equal(t, "Nieprawidłowy format danych", decode(t, rec).Error)
}

func TestOfferGet(t *testing.T) {
	s := newTestServer(t, "")
	s.offers.GetByIDFn = func(_ context.Context, id string) (*domain.Offer, error) {
		if id != offerID {
			return nil, gorm.ErrRecordNotFound
		}
		return storedOffer(domain.StatusActive), nil
	}
	s.offers.ListImagesFn = func(context.Context, string) ([]domain.Image, error) {
		return []domain.Image{{OfferID: offerID, URL: "https://cdn.example.com/a.jpg"}}, nil
	}

	rec := s.do(t, stdhttp.MethodGet, "/api/offers/"+offerID, nil, s.signerToken(t), nil)
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	var dto offerUC.OfferDTO
	decodeData(t, rec, &dto)
	assert.Equal(t, offerID, dto.ID)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, dto.Images)

	rec = s.do(t, stdhttp.MethodGet, "/api/offers/missing", nil, s.signerToken(t), nil)
	require.Equal(t, stdhttp.StatusNotFound, rec.Code)
	assert.Equal(t, "Oferta nie istnieje", decode(t, rec).Error)
}

func TestOfferListAvailable_Pagination(t *testing.T) {
	s := newTestServer(t, "")
	var got domain.ListFilter
	s.offers.ListFn = func(_ context.Context, f domain.ListFilter) ([]domain.Offer, int64, error) {
		got = f
		return []domain.Offer{*storedOffer(domain.StatusActive)}, 25, nil
	}
	s.offers.ListImagesByOfferIDsFn = func(_ context.Context, ids []string) ([]domain.Image, error) {
		return nil, errors.New("images unavailable")
	}

	rec := s.do(t, stdhttp.MethodGet, "/api/offers/available?page=2&limit=10&sort=end_at", nil, s.signerToken(t), nil)
	require.Equal(t, stdhttp.StatusOK, rec.Code)

	var items []offerUC.OfferDTO
	env := decodeData(t, rec, &items)
	require.Len(t, items, 1)
	assert.Equal(t, []string{}, items[0].Images)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 3, env.Pagination.TotalPages)
	assert.Equal(t, int64(25), env.Pagination.Total)
	assert.Equal(t, 2, env.Pagination.Page)

	require.NotNil(t, got.Status)
	assert.Equal(t, domain.StatusActive, *got.Status)
	assert.NotNil(t, got.EndsAfter)
	assert.Equal(t, "end_at", got.SortBy)
}

func TestOfferList_AdminOnlyAndInternalErrorHidden(t *testing.T) {
	s := newTestServer(t, "")
	s.offers.ListFn = func(context.Context, domain.ListFilter) ([]domain.Offer, int64, error) {
		return nil, 0, errors.New("dial tcp 10.0.0.5:3306: connection refused")
	}

	rec := s.do(t, stdhttp.MethodGet, "/api/offers", nil, s.signerToken(t), nil)
	assert.Equal(t, stdhttp.StatusForbidden, rec.Code)

	rec = s.do(t, stdhttp.MethodGet, "/api/offers", nil, s.adminToken(t), nil)
	require.Equal(t, stdhttp.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Wystąpił nieoczekiwany błąd", decode(t, rec).Error)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestOfferUpdate_ImagesSemantics(t *testing.T) {
	s := newTestServer(t, "")
	s.offers.GetByIDFn = func(context.Context, string) (*domain.Offer, error) { return storedOffer(domain.StatusDraft), nil }
	s.offers.ListImagesFn = func(context.Context, string) ([]domain.Image, error) {
		return []domain.Image{{URL: "https://cdn.example.com/old.jpg"}}, nil
	}
	var replaced *[]string
	s.offers.ReplaceImagesFn = func(_ context.Context, _ string, urls []string) error { replaced = &urls; return nil }

	body := validOfferBody()
	delete(body, "images")
	rec := s.do(t, stdhttp.MethodPut, "/api/offers/"+offerID, body, s.adminToken(t), nil)
	require.Equal(t, stdhttp.StatusOK, rec.Code, rec.Body.String())
	assert.Nil(t, replaced, "omitted images keep the current set")
	var dto offerUC.OfferDTO
	decodeData(t, rec, &dto)
	assert.Equal(t, []string{"https://cdn.example.com/old.jpg"}, dto.Images)

	body["images"] = []string{}
	rec = s.do(t, stdhttp.MethodPut, "/api/offers/"+offerID, body, s.adminToken(t), nil)
	require.Equal(t, stdhttp.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, replaced)
	assert.Empty(t, *replaced)
	decodeData(t, rec, &dto)
	assert.Empty(t, dto.Images)
}

func TestOfferUpdateStatus(t *testing.T) {
	s := newTestServer(t, "")
	s.offers.GetByIDFn = func(context.Context, string) (*domain.Offer, error) { return storedOffer(domain.StatusDraft), nil }
	s.offers.ListImagesFn = func(context.Context, string) ([]domain.Image, error) { return nil, nil }
	var saved domain.Status
	s.offers.SaveFn = func(_ context.Context, o *domain.Offer) error { saved = o.Status; return nil }

	rec := s.do(t, stdhttp.MethodPut, "/api/offers/"+offerID+"/status", map[string]string{"status": "archived"}, s.adminToken(t), nil)
	require.Equal(t, stdhttp.StatusBadRequest, rec.Code)
	assert.True(t, containsFieldMsg(decode(t, rec).Details, "status", "draft, active, closed"))

	rec = s.do(t, stdhttp.MethodPut, "/api/offers/"+offerID+"/status", map[string]string{"status": "active"}, s.adminToken(t), nil)
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.Equal(t, domain.StatusActive, saved)
}

func TestOffers_FeatureFlagOff(t *testing.T) {
	s := newTestServer(t, "offers=off")
	rec := s.do(t, stdhttp.MethodGet, "/api/offers/available", nil, s.signerToken(t), nil)
	assert.Equal(t, stdhttp.StatusNotFound, rec.Code)
}
