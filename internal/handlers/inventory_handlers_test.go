package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluekeys/repair_shop/internal/models"
)

func TestCreateInventory(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/inventory", map[string]interface{}{
		"name":     "oil filter",
		"price":    9.99,
		"quantity": 12,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var item models.InventoryItem
	decodeBody(t, rec, &item)
	require.NotZero(t, item.ID)
	require.Equal(t, "oil filter", item.Name)
	require.Equal(t, 12, item.Quantity)
}

func TestCreateInventoryDefaultsQuantity(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/inventory", map[string]interface{}{
		"name":  "coolant",
		"price": 14.50,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var item models.InventoryItem
	decodeBody(t, rec, &item)
	require.Equal(t, 0, item.Quantity)
}

func TestCreateInventoryValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/inventory", map[string]interface{}{
		"price": 5.0,
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var fields map[string]string
	decodeBody(t, rec, &fields)
	require.Equal(t, "Missing data for required field.", fields["name"])
}

func TestGetInventory(t *testing.T) {
	env := newTestEnv(t)
	env.createItem("oil filter", 9.99, 3)
	env.createItem("coolant", 14.50, 0)

	rec := env.do(http.MethodGet, "/inventory", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.InventoryItem
	decodeBody(t, rec, &items)
	require.Len(t, items, 2)
}

func TestSearchInventory(t *testing.T) {
	env := newTestEnv(t)
	env.createItem("oil filter", 9.99, 3)
	env.createItem("air filter", 18.00, 2)
	env.createItem("coolant", 14.50, 1)

	rec := env.do(http.MethodGet, "/inventory/search?name=filter", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []map[string]interface{}
	decodeBody(t, rec, &list)
	require.Len(t, list, 2)
	// search shape has no stock counts
	require.NotContains(t, rec.Body.String(), "quantity")
}

func TestUpdateInventory(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem("oil filter", 9.99, 3)

	rec := env.do(http.MethodPut, "/inventory/1", map[string]interface{}{
		"name":     "oil filter premium",
		"price":    12.99,
		"quantity": 5,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fresh models.InventoryItem
	require.NoError(t, env.DB.First(&fresh, item.ID).Error)
	require.Equal(t, "oil filter premium", fresh.Name)
	require.Equal(t, 5, fresh.Quantity)

	rec = env.do(http.MethodPut, "/inventory/99", map[string]interface{}{
		"name": "x", "price": 1.0, "quantity": 1,
	}, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Inventory item not found")
}

func TestDeleteInventory(t *testing.T) {
	env := newTestEnv(t)
	env.createItem("oil filter", 9.99, 3)

	rec := env.do(http.MethodDelete, "/inventory/1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Inventory item with ID 1 has been deleted")

	rec = env.do(http.MethodDelete, "/inventory/1", nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
