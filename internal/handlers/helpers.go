package handlers

import (
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/bluekeys/repair_shop/internal/apperr"
	"github.com/bluekeys/repair_shop/internal/models"
)

const dateLayout = "2006-01-02"

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, apperr.Fields(map[string]string{field: "Not a valid date."})
	}
	return t, nil
}

// parseDateOptional treats an empty string as unset.
func parseDateOptional(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t time.Time) string { return t.Format(dateLayout) }

func formatDateOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

type ticketResponse struct {
	ID                 uint                   `json:"id"`
	ServiceDescription string                 `json:"service_description"`
	Cost               float64                `json:"cost"`
	VinNumber          string                 `json:"vin_number"`
	WorkComplete       bool                   `json:"work_complete"`
	CarSubmissionDate  string                 `json:"car_submission_date"`
	WorkStartDate      *string                `json:"work_start_date"`
	WorkFinishDate     *string                `json:"work_finish_date"`
	InventoryItems     []models.InventoryItem `json:"inventory_items"`
}

// ticketParts returns the items attached to a ticket in attachment order,
// duplicates included.
func ticketParts(db *gorm.DB, ticketID uint) ([]models.InventoryItem, error) {
	items := make([]models.InventoryItem, 0)
	err := db.Model(&models.TicketPart{}).
		Select("inventory.id, inventory.name, inventory.price, inventory.quantity").
		Joins("JOIN inventory ON inventory.id = service_ticket_inventory.inventory_item_id").
		Where("service_ticket_inventory.service_ticket_id = ?", ticketID).
		Order("service_ticket_inventory.id ASC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func buildTicketResponse(db *gorm.DB, t *models.ServiceTicket) (ticketResponse, error) {
	items, err := ticketParts(db, t.ID)
	if err != nil {
		return ticketResponse{}, err
	}
	return ticketResponse{
		ID:                 t.ID,
		ServiceDescription: t.ServiceDescription,
		Cost:               t.Cost,
		VinNumber:          t.VinNumber,
		WorkComplete:       t.WorkComplete,
		CarSubmissionDate:  formatDate(t.CarSubmissionDate),
		WorkStartDate:      formatDateOptional(t.WorkStartDate),
		WorkFinishDate:     formatDateOptional(t.WorkFinishDate),
		InventoryItems:     items,
	}, nil
}

func buildTicketResponses(db *gorm.DB, tickets []models.ServiceTicket) ([]ticketResponse, error) {
	out := make([]ticketResponse, 0, len(tickets))
	for i := range tickets {
		resp, err := buildTicketResponse(db, &tickets[i])
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}
