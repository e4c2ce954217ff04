package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/bluekeys/repair_shop/internal/apperr"
	"github.com/bluekeys/repair_shop/internal/hash"
	"github.com/bluekeys/repair_shop/internal/middleware/auth"
	"github.com/bluekeys/repair_shop/internal/models"
	"github.com/bluekeys/repair_shop/internal/mykafka"
	"github.com/bluekeys/repair_shop/internal/service/token"
	"github.com/bluekeys/repair_shop/internal/util"
)

type CustomerHandler struct {
	DB       *gorm.DB
	Tokens   *token.Service
	Producer *mykafka.Producer
}

type customerRequest struct {
	Name            string `json:"name" validate:"required"`
	PhoneNumber     string `json:"phone_number" validate:"required"`
	CarBrand        string `json:"car_brand" validate:"required"`
	CarType         string `json:"car_type" validate:"required"`
	CarMileage      int    `json:"car_mileage" validate:"required"`
	MechanicalIssue string `json:"mechanical_issue" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// customerView is the list/search shape: contact and vehicle fields, no email.
type customerView struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	PhoneNumber     string `json:"phone_number"`
	CarBrand        string `json:"car_brand"`
	CarType         string `json:"car_type"`
	CarMileage      int    `json:"car_mileage"`
	MechanicalIssue string `json:"mechanical_issue"`
}

func viewOf(c *models.Customer) customerView {
	return customerView{
		ID:              c.ID,
		Name:            c.Name,
		PhoneNumber:     c.PhoneNumber,
		CarBrand:        c.CarBrand,
		CarType:         c.CarType,
		CarMileage:      c.CarMileage,
		MechanicalIssue: c.MechanicalIssue,
	}
}

func (h *CustomerHandler) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, mykafka.TopicCustomerEvents, key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}

	customer := models.Customer{
		Name:            req.Name,
		PhoneNumber:     req.PhoneNumber,
		CarBrand:        req.CarBrand,
		CarType:         req.CarType,
		CarMileage:      req.CarMileage,
		MechanicalIssue: req.MechanicalIssue,
		Email:           req.Email,
		PasswordHash:    pwHash,
	}
	if err := h.DB.Create(&customer).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}

	h.publish(c, fmt.Sprint(customer.ID), map[string]any{
		"type":       "customer_registered",
		"customerID": customer.ID,
		"email":      customer.Email,
	})

	return c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var customer models.Customer
	if err := h.DB.Where("email = ?", req.Email).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.Unauthorized, "Invalid email or password")
		}
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}

	if !hash.CheckPassword(customer.PasswordHash, req.Password) {
		return apperr.New(apperr.Unauthorized, "Invalid email or password")
	}

	tok, err := h.Tokens.Issue(customer.ID)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"token":   tok,
	})
}

// MyTickets lists every ticket of the authenticated customer with its
// attached parts. The customer id comes from the verified bearer token.
func (h *CustomerHandler) MyTickets(c echo.Context) error {
	customerID, ok := auth.CustomerID(c)
	if !ok {
		return apperr.New(apperr.Forbidden, "Invalid token")
	}

	var tickets []models.ServiceTicket
	if err := h.DB.Where("customer_id = ?", customerID).Order("id ASC").Find(&tickets).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}

	out, err := buildTicketResponses(h.DB, tickets)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CustomerHandler) GetCustomers(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	perPage := parseIntDefault(c.QueryParam("per_page"), util.DefaultPageSize)

	offset, limit := util.Calculate(page, perPage)

	var total int64
	if err := h.DB.Model(&models.Customer{}).Count(&total).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "Try again!", err)
	}

	var customers []models.Customer
	if err := h.DB.Order("id ASC").Offset(offset).Limit(limit).Find(&customers).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "Try again!", err)
	}

	list := make([]customerView, 0, len(customers))
	for i := range customers {
		list = append(list, viewOf(&customers[i]))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"customers": list,
		"total":     total,
		"page":      page,
		"pages":     (total + int64(limit) - 1) / int64(limit),
	})
}

func (h *CustomerHandler) SearchCustomers(c echo.Context) error {
	name := c.QueryParam("name")

	var customers []models.Customer
	if err := h.DB.Where("name LIKE ?", "%"+name+"%").Find(&customers).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}

	list := make([]customerView, 0, len(customers))
	for i := range customers {
		list = append(list, viewOf(&customers[i]))
	}
	return c.JSON(http.StatusOK, list)
}

func (h *CustomerHandler) UpdateCustomer(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.Wrap(apperr.Validation, "invalid id", err)
	}

	var customer models.Customer
	if err := h.DB.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "Customer not found")
		}
		return apperr.Wrap(apperr.Internal, "Error occurred while updating customer", err)
	}

	// partial update: only name and email are client-mutable after signup
	var req struct {
		Name  *string `json:"name"`
		Email *string `json:"email" validate:"omitempty,email"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}

	if err := h.DB.Save(&customer).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "Error occurred while updating customer", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":    customer.ID,
		"name":  customer.Name,
		"email": customer.Email,
	})
}

func (h *CustomerHandler) DeleteCustomer(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.Wrap(apperr.Validation, "invalid id", err)
	}

	var customer models.Customer
	if err := h.DB.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "Customer not in database!")
		}
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}

	if err := h.DB.Delete(&customer).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Customer with ID %d has been deleted", id),
	})
}
