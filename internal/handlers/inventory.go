package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/bluekeys/repair_shop/internal/apperr"
	"github.com/bluekeys/repair_shop/internal/es"
	"github.com/bluekeys/repair_shop/internal/models"
	"github.com/bluekeys/repair_shop/internal/service/search"
	"github.com/bluekeys/repair_shop/internal/util"
)

// InventoryHandler serves the parts inventory. ES is optional: when nil,
// search falls back to a LIKE query and no index is maintained.
type InventoryHandler struct {
	DB *gorm.DB
	ES *elasticsearch.Client
}

type inventoryRequest struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"required"`
	Quantity int     `json:"quantity" validate:"gte=0"`
}

// partView is the search response shape: no stock counts.
type partView struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (h *InventoryHandler) reindex(c echo.Context, item *models.InventoryItem) {
	if h.ES == nil {
		return
	}
	if err := es.IndexPart(c.Request().Context(), h.ES, fmt.Sprint(item.ID), item); err != nil {
		c.Logger().Errorf("ES index error: %v", err)
	}
}

func (h *InventoryHandler) CreateInventory(c echo.Context) error {
	var req inventoryRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item := models.InventoryItem{
		Name:     req.Name,
		Price:    req.Price,
		Quantity: req.Quantity,
	}
	if err := h.DB.Create(&item).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}

	h.reindex(c, &item)

	return c.JSON(http.StatusCreated, item)
}

func (h *InventoryHandler) GetInventory(c echo.Context) error {
	var items []models.InventoryItem
	if err := h.DB.Order("id ASC").Find(&items).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) SearchInventory(c echo.Context) error {
	name := c.QueryParam("name")

	var items []models.InventoryItem
	if h.ES != nil {
		page := parseIntDefault(c.QueryParam("page"), 1)
		size := parseIntDefault(c.QueryParam("size"), 10)
		from, limit := util.Calculate(page, size)

		_, found, err := search.Parts(c.Request().Context(), h.ES, es.PartsIndex, name, from, limit)
		if err != nil {
			return apperr.Wrap(apperr.Internal, "An error occurred", err)
		}
		items = found
	} else {
		if err := h.DB.Where("name LIKE ?", "%"+name+"%").Find(&items).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "An error occurred", err)
		}
	}

	list := make([]partView, 0, len(items))
	for _, item := range items {
		list = append(list, partView{ID: item.ID, Name: item.Name, Price: item.Price})
	}
	return c.JSON(http.StatusOK, list)
}

func (h *InventoryHandler) UpdateInventory(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.Wrap(apperr.Validation, "invalid id", err)
	}

	var item models.InventoryItem
	if err := h.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "Inventory item not found")
		}
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}

	var req inventoryRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item.Name = req.Name
	item.Price = req.Price
	item.Quantity = req.Quantity

	if err := h.DB.Save(&item).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}

	h.reindex(c, &item)

	return c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) DeleteInventory(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.Wrap(apperr.Validation, "invalid id", err)
	}

	var item models.InventoryItem
	if err := h.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "Inventory item not found")
		}
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}

	if err := h.DB.Delete(&item).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}

	if h.ES != nil {
		if err := es.DeletePart(c.Request().Context(), h.ES, fmt.Sprint(item.ID)); err != nil {
			c.Logger().Errorf("ES delete error: %v", err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Inventory item with ID %d has been deleted", id),
	})
}
