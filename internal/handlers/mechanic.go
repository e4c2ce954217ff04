package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/bluekeys/repair_shop/internal/apperr"
	"github.com/bluekeys/repair_shop/internal/models"
)

type MechanicHandler struct {
	DB *gorm.DB
}

type mechanicRequest struct {
	Name        string  `json:"mechanic_name" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	Address     string  `json:"address" validate:"required"`
	PhoneNumber string  `json:"phone_number" validate:"required"`
	Salary      float64 `json:"salary" validate:"required"`
}

func (h *MechanicHandler) CreateMechanic(c echo.Context) error {
	var req mechanicRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	mechanic := models.Mechanic{
		Name:        req.Name,
		Email:       req.Email,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		Salary:      req.Salary,
	}
	if err := h.DB.Create(&mechanic).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"id":      mechanic.ID,
		"message": "Mechanic added successfully",
	})
}

func (h *MechanicHandler) GetMechanics(c echo.Context) error {
	var mechanics []models.Mechanic
	if err := h.DB.Order("id ASC").Find(&mechanics).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}
	return c.JSON(http.StatusOK, mechanics)
}

func (h *MechanicHandler) SearchMechanics(c echo.Context) error {
	name := c.QueryParam("mechanic_name")

	var mechanics []models.Mechanic
	if err := h.DB.Where("mechanic_name LIKE ?", "%"+name+"%").Find(&mechanics).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}
	return c.JSON(http.StatusOK, mechanics)
}

func (h *MechanicHandler) UpdateMechanic(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.Wrap(apperr.Validation, "invalid id", err)
	}

	var mechanic models.Mechanic
	if err := h.DB.First(&mechanic, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "Mechanic not found in database! Try a new entry!")
		}
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}

	var req mechanicRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	mechanic.Name = req.Name
	mechanic.Email = req.Email
	mechanic.Address = req.Address
	mechanic.PhoneNumber = req.PhoneNumber
	mechanic.Salary = req.Salary

	if err := h.DB.Save(&mechanic).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Mechanic is updated!"})
}

func (h *MechanicHandler) DeleteMechanic(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.Wrap(apperr.Validation, "invalid id", err)
	}

	var mechanic models.Mechanic
	if err := h.DB.First(&mechanic, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "Mechanic Data not found")
		}
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}

	if err := h.DB.Delete(&mechanic).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Mechanic with ID %d has been deleted", id),
	})
}
