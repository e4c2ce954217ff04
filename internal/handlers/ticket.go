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
	"github.com/bluekeys/repair_shop/internal/models"
	"github.com/bluekeys/repair_shop/internal/mykafka"
)

type TicketHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

type ticketRequest struct {
	ServiceDescription string  `json:"service_description" validate:"required"`
	Cost               float64 `json:"cost" validate:"required"`
	VinNumber          string  `json:"vin_number" validate:"required"`
	WorkComplete       bool    `json:"work_complete"`
	CarSubmissionDate  string  `json:"car_submission_date" validate:"required"`
	WorkStartDate      string  `json:"work_start_date"`
	WorkFinishDate     string  `json:"work_finish_date"`
	CustomerID         uint    `json:"customer_id" validate:"required"`
	MechanicID         uint    `json:"mechanic_id" validate:"required"`
}

type addPartRequest struct {
	PartID uint `json:"part_id" validate:"required"`
}

func (h *TicketHandler) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, mykafka.TopicTicketEvents, key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *TicketHandler) applyRequest(t *models.ServiceTicket, req *ticketRequest) error {
	submitted, err := parseDate("car_submission_date", req.CarSubmissionDate)
	if err != nil {
		return err
	}
	started, err := parseDateOptional("work_start_date", req.WorkStartDate)
	if err != nil {
		return err
	}
	finished, err := parseDateOptional("work_finish_date", req.WorkFinishDate)
	if err != nil {
		return err
	}

	t.ServiceDescription = req.ServiceDescription
	t.Cost = req.Cost
	t.VinNumber = req.VinNumber
	t.WorkComplete = req.WorkComplete
	t.CarSubmissionDate = submitted
	t.WorkStartDate = started
	t.WorkFinishDate = finished
	t.CustomerID = req.CustomerID
	t.MechanicID = req.MechanicID
	return nil
}

func (h *TicketHandler) CreateTicket(c echo.Context) error {
	var req ticketRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var ticket models.ServiceTicket
	if err := h.applyRequest(&ticket, &req); err != nil {
		return err
	}

	if err := h.DB.Create(&ticket).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}

	h.publish(c, fmt.Sprint(ticket.ID), map[string]any{
		"type":       "ticket_created",
		"ticketID":   ticket.ID,
		"customerID": ticket.CustomerID,
		"mechanicID": ticket.MechanicID,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"id":      ticket.ID,
		"message": "Service ticket created successfully!",
	})
}

func (h *TicketHandler) GetTickets(c echo.Context) error {
	var tickets []models.ServiceTicket
	if err := h.DB.Order("id ASC").Find(&tickets).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}

	out, err := buildTicketResponses(h.DB, tickets)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TicketHandler) SearchTickets(c echo.Context) error {
	vin := c.QueryParam("vin_number")

	var tickets []models.ServiceTicket
	if err := h.DB.Where("vin_number LIKE ?", "%"+vin+"%").Find(&tickets).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}

	out, err := buildTicketResponses(h.DB, tickets)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}
	return c.JSON(http.StatusOK, out)
}

// AddPart attaches an inventory item to a ticket and takes one unit of
// stock. The existence checks, the link insert and the decrement run in one
// transaction; the decrement is conditional on quantity > 0 so concurrent
// attaches cannot drive stock negative. Re-attaching the same part is
// allowed and consumes another unit each time.
func (h *TicketHandler) AddPart(c echo.Context) error {
	ticketID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.Wrap(apperr.Validation, "invalid id", err)
	}

	var req addPartRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var item models.InventoryItem
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		var ticket models.ServiceTicket
		if err := tx.First(&ticket, ticketID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "Service ticket not found")
			}
			return err
		}

		if err := tx.First(&item, req.PartID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "Inventory item not found")
			}
			return err
		}

		if item.Quantity <= 0 {
			return apperr.New(apperr.InsufficientStock, "Not enough stock")
		}

		res := tx.Model(&models.InventoryItem{}).
			Where("id = ? AND quantity > 0", item.ID).
			UpdateColumn("quantity", gorm.Expr("quantity - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.InsufficientStock, "Not enough stock")
		}

		link := models.TicketPart{
			ServiceTicketID: ticket.ID,
			InventoryItemID: item.ID,
		}
		return tx.Create(&link).Error
	})
	if txErr != nil {
		var ae *apperr.Error
		if errors.As(txErr, &ae) {
			return ae
		}
		return apperr.Wrap(apperr.Internal, "An error occurred", txErr)
	}

	h.publish(c, fmt.Sprint(ticketID), map[string]any{
		"type":     "part_attached",
		"ticketID": ticketID,
		"partID":   item.ID,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Part '%s' added to Service Ticket ID %d", item.Name, ticketID),
	})
}

func (h *TicketHandler) UpdateTicket(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.Wrap(apperr.Validation, "invalid id", err)
	}

	var ticket models.ServiceTicket
	if err := h.DB.First(&ticket, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "Service ticket not found! Try again!")
		}
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}

	var req ticketRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.applyRequest(&ticket, &req); err != nil {
		return err
	}

	if err := h.DB.Save(&ticket).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Service ticket updated successfully!"})
}

func (h *TicketHandler) DeleteTicket(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.Wrap(apperr.Validation, "invalid id", err)
	}

	var ticket models.ServiceTicket
	if err := h.DB.First(&ticket, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "Service ticket not in database!")
		}
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}

	if err := h.DB.Delete(&ticket).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "An error occurred", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Service ticket with ID %d has been deleted", id),
	})
}
