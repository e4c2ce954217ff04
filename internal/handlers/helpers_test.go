package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/bluekeys/repair_shop/internal/config"
	"github.com/bluekeys/repair_shop/internal/handlers"
	"github.com/bluekeys/repair_shop/internal/hash"
	"github.com/bluekeys/repair_shop/internal/logging"
	"github.com/bluekeys/repair_shop/internal/models"
	"github.com/bluekeys/repair_shop/internal/mykafka"
	"github.com/bluekeys/repair_shop/internal/service/token"
	httpserver "github.com/bluekeys/repair_shop/internal/transport/http"
)

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	DB     *gorm.DB
	Tokens *token.Service
}

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	db := initTestDB(t)
	tokens := token.NewService([]byte("test-secret"), time.Hour)
	prod := mykafka.NewProducer(nil)

	e := httpserver.NewEcho(logging.New("error"))
	httpserver.Register(e, &httpserver.Deps{
		DB:               db,
		Tokens:           tokens,
		CustomerHandler:  &handlers.CustomerHandler{DB: db, Tokens: tokens, Producer: prod},
		MechanicHandler:  &handlers.MechanicHandler{DB: db},
		TicketHandler:    &handlers.TicketHandler{DB: db, Producer: prod},
		InventoryHandler: &handlers.InventoryHandler{DB: db},
	})

	return &testEnv{T: t, E: e, DB: db, Tokens: tokens}
}

// do drives a request through the full router so middleware, validation and
// the error handler all run.
func (env *testEnv) do(method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			env.T.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func bearer(tok string) map[string]string {
	return map[string]string{echo.HeaderAuthorization: "Bearer " + tok}
}

func (env *testEnv) createCustomer(email, password string) *models.Customer {
	pwHash, err := hash.HashPassword(password)
	if err != nil {
		env.T.Fatalf("hash password: %v", err)
	}
	customer := models.Customer{
		Name:            "Test Customer",
		PhoneNumber:     "555-0101",
		CarBrand:        "Toyota",
		CarType:         "Corolla",
		CarMileage:      42000,
		MechanicalIssue: "engine rattle",
		Email:           email,
		PasswordHash:    pwHash,
	}
	if err := env.DB.Create(&customer).Error; err != nil {
		env.T.Fatalf("create customer: %v", err)
	}
	return &customer
}

func (env *testEnv) createMechanic() *models.Mechanic {
	mechanic := models.Mechanic{
		Name:        "Test Mechanic",
		Email:       "mechanic@shop.test",
		Address:     "1 Garage Way",
		PhoneNumber: "555-0102",
		Salary:      52000,
	}
	if err := env.DB.Create(&mechanic).Error; err != nil {
		env.T.Fatalf("create mechanic: %v", err)
	}
	return &mechanic
}

func (env *testEnv) createTicket(customerID, mechanicID uint) *models.ServiceTicket {
	ticket := models.ServiceTicket{
		ServiceDescription: "brake pad replacement",
		Cost:               199.99,
		VinNumber:          "1HGBH41JXMN109186",
		CarSubmissionDate:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		CustomerID:         customerID,
		MechanicID:         mechanicID,
	}
	if err := env.DB.Create(&ticket).Error; err != nil {
		env.T.Fatalf("create ticket: %v", err)
	}
	return &ticket
}

func (env *testEnv) createItem(name string, price float64, quantity int) *models.InventoryItem {
	item := models.InventoryItem{Name: name, Price: price, Quantity: quantity}
	if err := env.DB.Create(&item).Error; err != nil {
		env.T.Fatalf("create inventory item: %v", err)
	}
	return &item
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
