package models

import (
	"time"
)

type Customer struct {
	ID              uint   `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name            string `gorm:"size:45;not null"          json:"name"`
	PhoneNumber     string `gorm:"size:15;not null"          json:"phone_number"`
	CarBrand        string `gorm:"size:30;not null"          json:"car_brand"`
	CarType         string `gorm:"size:30;not null"          json:"car_type"`
	CarMileage      int    `gorm:"not null"                  json:"car_mileage"`
	MechanicalIssue string `gorm:"size:250;not null"         json:"mechanical_issue"`
	Email           string `gorm:"size:45;not null;index"    json:"email"`
	PasswordHash    string `gorm:"not null"                  json:"-"`
}

type Mechanic struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"              json:"id"`
	Name        string  `gorm:"column:mechanic_name;size:45;not null" json:"mechanic_name"`
	Email       string  `gorm:"size:65;not null"                      json:"email"`
	Address     string  `gorm:"size:100;not null"                     json:"address"`
	PhoneNumber string  `gorm:"size:15;not null"                      json:"phone_number"`
	Salary      float64 `gorm:"not null"                              json:"salary"`
}

type ServiceTicket struct {
	ID                 uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	ServiceDescription string     `gorm:"size:250;not null"        json:"service_description"`
	Cost               float64    `gorm:"not null"                 json:"cost"`
	VinNumber          string     `gorm:"size:17;not null"         json:"vin_number"`
	WorkComplete       bool       `gorm:"not null;default:false"   json:"work_complete"`
	CarSubmissionDate  time.Time  `gorm:"not null"                 json:"car_submission_date"`
	WorkStartDate      *time.Time `json:"work_start_date"`
	WorkFinishDate     *time.Time `json:"work_finish_date"`
	CustomerID         uint       `gorm:"index;not null"           json:"customer_id"`
	MechanicID         uint       `gorm:"index;not null"           json:"mechanic_id"`
}

type InventoryItem struct {
	ID       uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string  `gorm:"size:55;not null"         json:"name"`
	Price    float64 `gorm:"not null"                 json:"price"`
	Quantity int     `gorm:"not null;default:0"       json:"quantity"`
}

func (InventoryItem) TableName() string { return "inventory" }

// TicketPart links a ticket to an inventory item. It has its own id instead
// of a composite key: the same part may be attached to the same ticket more
// than once, and nested listings order by attachment.
type TicketPart struct {
	ID              uint `gorm:"primaryKey;autoIncrement" json:"id"`
	ServiceTicketID uint `gorm:"index;not null"           json:"service_ticket_id"`
	InventoryItemID uint `gorm:"index;not null"           json:"inventory_item_id"`
}

func (TicketPart) TableName() string { return "service_ticket_inventory" }
