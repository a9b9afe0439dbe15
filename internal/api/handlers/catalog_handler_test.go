package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chandrabs25/Andaman-travel-website/internal/api/handlers"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
	apperrors "github.com/chandrabs25/Andaman-travel-website/pkg/errors"
)

func TestCatalogHandler_ListDestinationsSearchesWhenQueryGiven(t *testing.T) {
	svc := new(MockCatalogService)
	svc.On("SearchDestinations", mock.Anything, "beach").Return([]*entities.Island{{ID: 1, Name: "Havelock Island"}}, nil)
	svc.On("ListDestinations", mock.Anything).Return(nil, nil)
	h := handlers.NewCatalogHandler(svc)

	rec := httptest.NewRecorder()
	h.ListDestinations(rec, newRequest(http.MethodGet, "/api/destinations?q=beach", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	var islands []entities.Island
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &islands))
	assert.Equal(t, "Havelock Island", islands[0].Name)

	rec = httptest.NewRecorder()
	h.ListDestinations(rec, newRequest(http.MethodGet, "/api/destinations", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(decodeEnvelope(t, rec).Data))
}

func TestCatalogHandler_GetDestination(t *testing.T) {
	svc := new(MockCatalogService)
	svc.On("GetDestination", mock.Anything, int64(1)).
		Return(&entities.IslandDetail{Island: entities.Island{ID: 1, Name: "Havelock Island"}}, nil)
	svc.On("GetDestination", mock.Anything, int64(9)).
		Return(nil, apperrors.NewNotFoundError("Destination not found"))
	h := handlers.NewCatalogHandler(svc)

	get := func(id string) *httptest.ResponseRecorder {
		r := newRequest(http.MethodGet, "/api/destinations/"+id, "")
		r.SetPathValue("id", id)
		rec := httptest.NewRecorder()
		h.GetDestination(rec, r)
		return rec
	}

	rec := get("1")
	require.Equal(t, http.StatusOK, rec.Code)
	var detail map[string]any
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &detail))
	assert.Equal(t, "Havelock Island", detail["name"])
	assert.Equal(t, []any{}, detail["services"])

	rec = get("9")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Destination not found", decodeEnvelope(t, rec).Message)

	rec = get("abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNumberOfCalls(t, "GetDestination", 2)
}

func TestCatalogHandler_GetPackageInactiveIsNotFound(t *testing.T) {
	svc := new(MockCatalogService)
	svc.On("GetPackage", mock.Anything, int64(4)).Return(nil, apperrors.NewNotFoundError("Package not found"))

	r := newRequest(http.MethodGet, "/api/packages/4", "")
	r.SetPathValue("id", "4")
	rec := httptest.NewRecorder()
	handlers.NewCatalogHandler(svc).GetPackage(rec, r)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "Package not found", env.Message)
}

func TestCatalogHandler_Activities(t *testing.T) {
	svc := new(MockCatalogService)
	svc.On("Activities", mock.Anything).Return(&entities.Activities{
		Destinations: []*entities.Island{{ID: 1}},
	}, nil)

	rec := httptest.NewRecorder()
	handlers.NewCatalogHandler(svc).Activities(rec, newRequest(http.MethodGet, "/api/activities", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string][]any
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &body))
	assert.Len(t, body["destinations"], 1)
	assert.NotNil(t, body["packages"])
	assert.NotNil(t, body["activities"])
}

func TestNotImplemented(t *testing.T) {
	rec := httptest.NewRecorder()
	handlers.NotImplemented(rec, newRequest(http.MethodPost, "/api/payment/order", ""))

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "not implemented", env.Message)
}
