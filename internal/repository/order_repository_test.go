package repository

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
)

func checkoutOrder() *entity.Order {
	return &entity.Order{
		GuestID: "guest-1",
		Status:  entity.OrderPending,
		Amount:  360,
		Items: []entity.OrderItem{
			{VariantID: 101, ProductName: "Hydra Serum", Quantity: 2, Price: 150},
		},
		Delivery: &entity.Delivery{
			Email:   "buyer@example.com",
			Phone:   "01700000000",
			Address: "12 Lake Road",
			City:    "Dhaka",
			Charge:  60,
			Status:  entity.DeliveryProcessing,
		},
	}
}

func TestCreateOrderCommitsAllRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(77, 1))
	mock.ExpectExec("INSERT INTO order_items").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO deliveries").WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec("DELETE FROM cart_items").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	order := checkoutOrder()
	created, err := NewOrderRepository(db).CreateOrder(context.Background(), order, []int64{11, 12})
	require.NoError(t, err)
	assert.Equal(t, int64(77), created.ID)
	assert.Equal(t, int64(77), created.Items[0].OrderID)
	assert.Equal(t, int64(9), created.Delivery.ID)
	assert.Equal(t, int64(77), created.Delivery.OrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderRollsBackWhenDeliveryIDUnavailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(77, 1))
	mock.ExpectExec("INSERT INTO order_items").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO deliveries").
		WillReturnResult(sqlmock.NewErrorResult(errors.New("insert id unavailable")))
	mock.ExpectRollback()

	_, err = NewOrderRepository(db).CreateOrder(context.Background(), checkoutOrder(), nil)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderRollsBackWhenCartItemsVanished(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(77, 1))
	mock.ExpectExec("INSERT INTO order_items").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO deliveries").WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec("DELETE FROM cart_items").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	_, err = NewOrderRepository(db).CreateOrder(context.Background(), checkoutOrder(), []int64{11, 12})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
