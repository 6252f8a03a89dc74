package shipment

import (
	"errors"
	"testing"

	"courier-service/apperr"
	"courier-service/database"
	locationModel "courier-service/models/location"
	notificationModel "courier-service/models/notification"
	shipmentModel "courier-service/models/shipment"
	userModel "courier-service/models/user"
	notificationService "courier-service/services/notification"
	shipmentTypes "courier-service/types/shipment"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return NewShipmentService(db, notificationService.NewNotificationService(db)), db
}

func seedUser(t *testing.T, db *gorm.DB, uuid string, roles ...string) *userModel.User {
	t.Helper()

	u := userModel.User{Uuid: uuid, Name: "Test User " + uuid, Roles: roles}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func seedLocations(t *testing.T, db *gorm.DB) (uint, uint) {
	t.Helper()

	origin := locationModel.Location{Name: "Origin Hub", Street: "1 A St", City: "Springfield", PostalCode: "62701", Country: "US"}
	destination := locationModel.Location{Name: "Destination Hub", Street: "2 B St", City: "Chicago", PostalCode: "60614", Country: "US"}
	require.NoError(t, db.Create(&origin).Error)
	require.NoError(t, db.Create(&destination).Error)
	return origin.ID, destination.ID
}

func createRequest(originID, destinationID uint) *shipmentTypes.ShipmentCreateRequest {
	return &shipmentTypes.ShipmentCreateRequest{
		RecipientName:         "Jordan Doe",
		RecipientPhone:        "+15550100",
		OriginLocationID:      originID,
		DestinationLocationID: destinationID,
		Description:           "Books",
		WeightKg:              2.5,
	}
}

func TestCreateForcesPendingAndAppendsInitialEvent(t *testing.T) {
	svc, db := setupService(t)
	sender := seedUser(t, db, "sender-1", "customer")
	originID, destinationID := seedLocations(t, db)

	req := createRequest(originID, destinationID)
	req.Status = "delivered" // caller input must be ignored

	sh, err := svc.Create(sender, req)
	require.NoError(t, err)

	assert.Equal(t, shipmentModel.StatusPending, sh.Status)
	assert.NotEmpty(t, sh.TrackingID)
	assert.Equal(t, shipmentModel.PaymentPending, sh.PaymentStatus)
	assert.Greater(t, sh.Price, 0.0)
	require.NotNil(t, sh.EstimatedDeliveryAt)

	var events []shipmentModel.ShipmentStatusEvent
	require.NoError(t, db.Where("shipment_id = ?", sh.ID).Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, shipmentModel.StatusPending, events[0].Status)
	require.NotNil(t, events[0].ActorID)
	assert.Equal(t, sender.ID, *events[0].ActorID)
}

func TestCreateRejectsSameOriginAndDestination(t *testing.T) {
	svc, db := setupService(t)
	sender := seedUser(t, db, "sender-1", "customer")
	originID, _ := seedLocations(t, db)

	_, err := svc.Create(sender, createRequest(originID, originID))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.Invalid))

	// Validation must fail before any persistence occurs
	var shipmentCount, eventCount int64
	db.Model(&shipmentModel.Shipment{}).Count(&shipmentCount)
	db.Model(&shipmentModel.ShipmentStatusEvent{}).Count(&eventCount)
	assert.Zero(t, shipmentCount)
	assert.Zero(t, eventCount)
}

func TestUpdateStatusRejectsUnknownStatusWithoutSideEffects(t *testing.T) {
	svc, db := setupService(t)
	sender := seedUser(t, db, "sender-1", "customer")
	staff := seedUser(t, db, "staff-1", "staff")
	originID, destinationID := seedLocations(t, db)

	sh, err := svc.Create(sender, createRequest(originID, destinationID))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(sh.ID, &shipmentTypes.StatusUpdateRequest{Status: "teleported"}, staff)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.Invalid))

	var eventCount int64
	db.Model(&shipmentModel.ShipmentStatusEvent{}).Where("shipment_id = ?", sh.ID).Count(&eventCount)
	assert.EqualValues(t, 1, eventCount) // only the creation entry

	var reloaded shipmentModel.Shipment
	require.NoError(t, db.First(&reloaded, sh.ID).Error)
	assert.Equal(t, shipmentModel.StatusPending, reloaded.Status)
}

func TestUpdateStatusAppendsExactlyOneEventAndNotifiesSender(t *testing.T) {
	svc, db := setupService(t)
	sender := seedUser(t, db, "sender-1", "customer")
	staff := seedUser(t, db, "staff-1", "staff")
	originID, destinationID := seedLocations(t, db)

	sh, err := svc.Create(sender, createRequest(originID, destinationID))
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(sh.ID, &shipmentTypes.StatusUpdateRequest{
		Status:   "picked_up",
		Location: "Origin Hub dock 3",
		Notes:    "driver scan",
	}, staff)
	require.NoError(t, err)
	assert.Equal(t, shipmentModel.StatusPickedUp, updated.Status)

	var events []shipmentModel.ShipmentStatusEvent
	require.NoError(t, db.Where("shipment_id = ?", sh.ID).Order("created_at DESC, id DESC").Find(&events).Error)
	require.Len(t, events, 2)
	assert.Equal(t, shipmentModel.StatusPickedUp, events[0].Status)
	assert.Equal(t, "Origin Hub dock 3", events[0].Location)
	assert.Equal(t, "driver scan", events[0].Notes)
	require.NotNil(t, events[0].ActorID)
	assert.Equal(t, staff.ID, *events[0].ActorID)

	var notifications []notificationModel.Notification
	require.NoError(t, db.Where("user_id = ?", sender.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0].Message, sh.TrackingID)
	assert.Contains(t, notifications[0].Message, "Picked up")
	assert.Nil(t, notifications[0].ReadAt)
}

func TestStatusNotificationCategories(t *testing.T) {
	svc, db := setupService(t)
	sender := seedUser(t, db, "sender-1", "customer")
	staff := seedUser(t, db, "staff-1", "staff")
	originID, destinationID := seedLocations(t, db)

	sh, err := svc.Create(sender, createRequest(originID, destinationID))
	require.NoError(t, err)

	for _, status := range []string{"in_transit", "delivered", "returned"} {
		_, err = svc.UpdateStatus(sh.ID, &shipmentTypes.StatusUpdateRequest{Status: status}, staff)
		require.NoError(t, err)
	}

	var notifications []notificationModel.Notification
	require.NoError(t, db.Where("user_id = ?", sender.ID).Order("id ASC").Find(&notifications).Error)
	require.Len(t, notifications, 3)
	assert.Equal(t, notificationModel.CategoryInfo, notifications[0].Category)
	assert.Equal(t, notificationModel.CategorySuccess, notifications[1].Category)
	assert.Equal(t, notificationModel.CategoryWarning, notifications[2].Category)
}

func TestDeliveredTimestampIsSetOnce(t *testing.T) {
	svc, db := setupService(t)
	sender := seedUser(t, db, "sender-1", "customer")
	staff := seedUser(t, db, "staff-1", "staff")
	originID, destinationID := seedLocations(t, db)

	sh, err := svc.Create(sender, createRequest(originID, destinationID))
	require.NoError(t, err)

	first, err := svc.UpdateStatus(sh.ID, &shipmentTypes.StatusUpdateRequest{Status: "delivered"}, staff)
	require.NoError(t, err)
	require.NotNil(t, first.DeliveredAt)
	deliveredAt := *first.DeliveredAt

	// Flat status set allows leaving and re-entering delivered
	_, err = svc.UpdateStatus(sh.ID, &shipmentTypes.StatusUpdateRequest{Status: "returned"}, staff)
	require.NoError(t, err)
	second, err := svc.UpdateStatus(sh.ID, &shipmentTypes.StatusUpdateRequest{Status: "delivered"}, staff)
	require.NoError(t, err)

	require.NotNil(t, second.DeliveredAt)
	assert.True(t, second.DeliveredAt.Equal(deliveredAt), "delivered timestamp must not move on re-delivery")
}

func TestBulkUpdateSkipsMissingIDs(t *testing.T) {
	svc, db := setupService(t)
	sender := seedUser(t, db, "sender-1", "customer")
	staff := seedUser(t, db, "staff-1", "staff")
	originID, destinationID := seedLocations(t, db)

	a, err := svc.Create(sender, createRequest(originID, destinationID))
	require.NoError(t, err)
	b, err := svc.Create(sender, createRequest(originID, destinationID))
	require.NoError(t, err)

	const missingID = uint(9999)
	result, err := svc.BulkUpdateStatus(&shipmentTypes.BulkStatusUpdateRequest{
		ShipmentIDs: []uint{a.ID, b.ID, missingID},
		Status:      "in_transit",
	}, staff)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Updated)
	assert.Equal(t, []uint{missingID}, result.SkippedIDs)
	require.Len(t, result.Items, 3)
	assert.Equal(t, BulkUpdated, result.Items[0].Outcome)
	assert.Equal(t, BulkUpdated, result.Items[1].Outcome)
	assert.Equal(t, BulkSkipped, result.Items[2].Outcome)

	for _, id := range []uint{a.ID, b.ID} {
		var reloaded shipmentModel.Shipment
		require.NoError(t, db.First(&reloaded, id).Error)
		assert.Equal(t, shipmentModel.StatusInTransit, reloaded.Status)
	}
}

func TestBulkUpdateRejectsEmptyIDList(t *testing.T) {
	svc, db := setupService(t)
	staff := seedUser(t, db, "staff-1", "staff")

	_, err := svc.BulkUpdateStatus(&shipmentTypes.BulkStatusUpdateRequest{
		ShipmentIDs: nil,
		Status:      "in_transit",
	}, staff)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.Invalid))
}

func TestTrackReturnsFullHistoryNewestFirst(t *testing.T) {
	svc, db := setupService(t)
	sender := seedUser(t, db, "sender-1", "customer")
	staff := seedUser(t, db, "staff-1", "staff")
	originID, destinationID := seedLocations(t, db)

	sh, err := svc.Create(sender, createRequest(originID, destinationID))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(sh.ID, &shipmentTypes.StatusUpdateRequest{Status: "picked_up"}, staff)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(sh.ID, &shipmentTypes.StatusUpdateRequest{Status: "in_transit"}, staff)
	require.NoError(t, err)

	resp, err := svc.Track(sh.TrackingID)
	require.NoError(t, err)

	assert.Equal(t, sh.TrackingID, resp.TrackingID)
	assert.Equal(t, shipmentModel.StatusInTransit, resp.Status)
	assert.Equal(t, "Origin Hub", resp.Origin)
	assert.Equal(t, "Destination Hub", resp.Destination)

	require.Len(t, resp.History, 3)
	assert.Equal(t, shipmentModel.StatusInTransit, resp.History[0].Status)
	assert.Equal(t, shipmentModel.StatusPickedUp, resp.History[1].Status)
	assert.Equal(t, shipmentModel.StatusPending, resp.History[2].Status)
}

func TestTrackMissHasZeroSideEffects(t *testing.T) {
	svc, db := setupService(t)

	_, err := svc.Track("no-such-tracking-id")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.NotFound))

	var eventCount, notificationCount int64
	db.Model(&shipmentModel.ShipmentStatusEvent{}).Count(&eventCount)
	db.Model(&notificationModel.Notification{}).Count(&notificationCount)
	assert.Zero(t, eventCount)
	assert.Zero(t, notificationCount)
}

func TestGetEnforcesOwnershipForCustomers(t *testing.T) {
	svc, db := setupService(t)
	sender := seedUser(t, db, "sender-1", "customer")
	other := seedUser(t, db, "other-1", "customer")
	staff := seedUser(t, db, "staff-1", "staff")
	originID, destinationID := seedLocations(t, db)

	sh, err := svc.Create(sender, createRequest(originID, destinationID))
	require.NoError(t, err)

	_, err = svc.Get(sh.ID, other)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.Unauthorized))

	got, err := svc.Get(sh.ID, staff)
	require.NoError(t, err)
	assert.Equal(t, sh.ID, got.ID)
}

func TestListScopesCustomersToOwnShipments(t *testing.T) {
	svc, db := setupService(t)
	sender := seedUser(t, db, "sender-1", "customer")
	other := seedUser(t, db, "other-1", "customer")
	staff := seedUser(t, db, "staff-1", "staff")
	originID, destinationID := seedLocations(t, db)

	_, err := svc.Create(sender, createRequest(originID, destinationID))
	require.NoError(t, err)
	_, err = svc.Create(other, createRequest(originID, destinationID))
	require.NoError(t, err)

	mine, err := svc.List(sender, "", 20, 0)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, sender.ID, mine[0].SenderID)

	all, err := svc.List(staff, "", 20, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
