package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"stitchlk-backend/models"
)

func newOrderRouter(ctrl *Controller) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/cart/:userId/checkout", ctrl.Checkout)
	r.PUT("/api/orders/:id/status", ctrl.UpdateOrderStatus)
	return r
}

func mockController(mt *mtest.T) *Controller {
	return &Controller{DB: mt.Client.Database("stitchlk"), Log: zerolog.Nop()}
}

const checkoutBody = `{"customer_name":"Nimal Perera","phone":"0771234567","address":"12 Temple Road, Kandy"}`

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("no cart document", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "stitchlk.carts", mtest.FirstBatch))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/cart/u1/checkout", strings.NewReader(checkoutBody))
		req.Header.Set("Content-Type", "application/json")
		newOrderRouter(mockController(mt)).ServeHTTP(w, req)

		require.Equal(mt, http.StatusBadRequest, w.Code)
		assert.Contains(mt, w.Body.String(), "Cart is empty")
		// Nothing beyond the cart read may touch the database.
		for _, ev := range mt.GetAllStartedEvents() {
			assert.Equal(mt, "find", ev.CommandName)
		}
	})

	mt.Run("cart without items", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "stitchlk.carts", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "user_id", Value: "u1"},
			{Key: "items", Value: bson.A{}},
			{Key: "total", Value: 0.0},
		}))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/cart/u1/checkout", strings.NewReader(checkoutBody))
		req.Header.Set("Content-Type", "application/json")
		newOrderRouter(mockController(mt)).ServeHTTP(w, req)

		require.Equal(mt, http.StatusBadRequest, w.Code)
		for _, ev := range mt.GetAllStartedEvents() {
			assert.Equal(mt, "find", ev.CommandName)
		}
	})
}

func TestUpdateOrderStatusAppendsOneHistoryRow(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("pending to confirmed", func(mt *mtest.T) {
		orderID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "stitchlk.orders", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: orderID},
				{Key: "order_id", Value: int64(7)},
				{Key: "order_number", Value: "ORD-000007"},
				{Key: "status", Value: models.OrderPending},
			}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(),
		)

		body := `{"status":"confirmed","changed_by":"admin@stitchlk.com"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/orders/"+orderID.Hex()+"/status", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		newOrderRouter(mockController(mt)).ServeHTTP(w, req)

		require.Equal(mt, http.StatusOK, w.Code)

		inserts := 0
		for _, ev := range mt.GetAllStartedEvents() {
			if ev.CommandName != "insert" {
				continue
			}
			inserts++
			require.Equal(mt, "order_history", ev.Command.Lookup("insert").StringValue())
			docs, err := ev.Command.Lookup("documents").Array().Values()
			require.NoError(mt, err)
			require.Len(mt, docs, 1)
			row := docs[0].Document()
			assert.Equal(mt, int64(7), row.Lookup("order_id").Int64())
			assert.Equal(mt, models.OrderPending, row.Lookup("previous_status").StringValue())
			assert.Equal(mt, models.OrderConfirmed, row.Lookup("new_status").StringValue())
			assert.Equal(mt, "admin@stitchlk.com", row.Lookup("changed_by").StringValue())
		}
		assert.Equal(mt, 1, inserts)
	})

	mt.Run("unchanged status writes nothing", func(mt *mtest.T) {
		orderID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "stitchlk.orders", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: orderID},
			{Key: "order_id", Value: int64(8)},
			{Key: "status", Value: models.OrderConfirmed},
		}))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/orders/"+orderID.Hex()+"/status",
			strings.NewReader(`{"status":"confirmed"}`))
		req.Header.Set("Content-Type", "application/json")
		newOrderRouter(mockController(mt)).ServeHTTP(w, req)

		require.Equal(mt, http.StatusOK, w.Code)
		assert.Contains(mt, w.Body.String(), "Status unchanged")
		for _, ev := range mt.GetAllStartedEvents() {
			assert.Equal(mt, "find", ev.CommandName)
		}
	})
}

func TestUpdateOrderStatusSurfacesHistoryWriteFailure(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("history insert fails", func(mt *mtest.T) {
		orderID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "stitchlk.orders", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: orderID},
				{Key: "order_id", Value: int64(9)},
				{Key: "status", Value: models.OrderPending},
			}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 121, Message: "Document failed validation"}),
		)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/orders/"+orderID.Hex()+"/status",
			strings.NewReader(`{"status":"shipped"}`))
		req.Header.Set("Content-Type", "application/json")
		newOrderRouter(mockController(mt)).ServeHTTP(w, req)

		require.Equal(mt, http.StatusInternalServerError, w.Code)
		assert.Contains(mt, w.Body.String(), "history could not be recorded")
	})
}
