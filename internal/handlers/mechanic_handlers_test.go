package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluekeys/repair_shop/internal/models"
)

func TestCreateMechanic(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/mechanics", map[string]interface{}{
		"mechanic_name": "Ray Wrench",
		"email":         "ray@shop.test",
		"address":       "2 Garage Way",
		"phone_number":  "555-0133",
		"salary":        61000,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), "Mechanic added successfully")

	var mechanic models.Mechanic
	require.NoError(t, env.DB.First(&mechanic).Error)
	require.Equal(t, "Ray Wrench", mechanic.Name)
}

func TestCreateMechanicValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/mechanics", map[string]interface{}{
		"email": "not-an-email",
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var fields map[string]string
	decodeBody(t, rec, &fields)
	require.Equal(t, "Missing data for required field.", fields["mechanic_name"])
	require.Equal(t, "Not a valid email address.", fields["email"])
}

func TestGetAndSearchMechanics(t *testing.T) {
	env := newTestEnv(t)
	env.createMechanic()

	rec := env.do(http.MethodGet, "/mechanics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var mechanics []models.Mechanic
	decodeBody(t, rec, &mechanics)
	require.Len(t, mechanics, 1)

	rec = env.do(http.MethodGet, "/mechanics/search?mechanic_name=Test", nil, nil)
	decodeBody(t, rec, &mechanics)
	require.Len(t, mechanics, 1)

	rec = env.do(http.MethodGet, "/mechanics/search?mechanic_name=Nobody", nil, nil)
	decodeBody(t, rec, &mechanics)
	require.Empty(t, mechanics)
}

func TestUpdateMechanic(t *testing.T) {
	env := newTestEnv(t)
	env.createMechanic()

	rec := env.do(http.MethodPut, "/mechanics/1", map[string]interface{}{
		"mechanic_name": "Renamed Mechanic",
		"email":         "renamed@shop.test",
		"address":       "3 Garage Way",
		"phone_number":  "555-0144",
		"salary":        65000,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Mechanic is updated!")

	rec = env.do(http.MethodPut, "/mechanics/99", map[string]interface{}{
		"mechanic_name": "x", "email": "x@y.test", "address": "a", "phone_number": "1", "salary": 1,
	}, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteMechanic(t *testing.T) {
	env := newTestEnv(t)
	env.createMechanic()

	rec := env.do(http.MethodDelete, "/mechanics/1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Mechanic with ID 1 has been deleted")

	rec = env.do(http.MethodDelete, "/mechanics/1", nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Mechanic Data not found")
}
