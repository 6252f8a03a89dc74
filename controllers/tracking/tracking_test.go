package tracking

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"courier-service/database"
	locationModel "courier-service/models/location"
	userModel "courier-service/models/user"
	notificationService "courier-service/services/notification"
	shipmentService "courier-service/services/shipment"
	shipmentTypes "courier-service/types/shipment"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupApp(t *testing.T) (*fiber.App, *shipmentService.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	svc := shipmentService.NewShipmentService(db, notificationService.NewNotificationService(db))
	controller := NewTrackingController(db, svc)

	app := fiber.New()
	app.Post("/api/track", controller.Track)
	return app, svc, db
}

func trackRequest(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/track", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestTrackReturnsShipmentWithHistory(t *testing.T) {
	app, svc, db := setupApp(t)

	sender := userModel.User{Uuid: "sender-1", Name: "Sender", Roles: []string{"customer"}}
	require.NoError(t, db.Create(&sender).Error)
	origin := locationModel.Location{Name: "Origin Hub", City: "Springfield", Country: "US"}
	destination := locationModel.Location{Name: "Destination Hub", City: "Chicago", Country: "US"}
	require.NoError(t, db.Create(&origin).Error)
	require.NoError(t, db.Create(&destination).Error)

	sh, err := svc.Create(&sender, &shipmentTypes.ShipmentCreateRequest{
		RecipientName:         "Jordan Doe",
		RecipientPhone:        "+15550100",
		OriginLocationID:      origin.ID,
		DestinationLocationID: destination.ID,
		Description:           "Books",
		WeightKg:              2.5,
	})
	require.NoError(t, err)

	resp := trackRequest(t, app, `{"tracking_id":"`+sh.TrackingID+`"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status int `json:"status"`
		Data   struct {
			TrackingID string `json:"tracking_id"`
			Status     string `json:"status"`
			Origin     string `json:"origin"`
			History    []struct {
				Status string `json:"status"`
			} `json:"history"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, sh.TrackingID, body.Data.TrackingID)
	assert.Equal(t, "pending", body.Data.Status)
	assert.Equal(t, "Origin Hub", body.Data.Origin)
	require.Len(t, body.Data.History, 1)
	assert.Equal(t, "pending", body.Data.History[0].Status)
}

func TestTrackUnknownIDReturns404(t *testing.T) {
	app, _, _ := setupApp(t)

	resp := trackRequest(t, app, `{"tracking_id":"no-such-id"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTrackMissingIDReturns422(t *testing.T) {
	app, _, _ := setupApp(t)

	resp := trackRequest(t, app, `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
