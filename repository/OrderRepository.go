package repository

import (
	"context"
	"errors"
	"time"

	"grocerStore/models"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderRepository interface {
	CreateOrder(order models.Order_db) (orderId string, err error)
	GetOrderById(orderId string) (order models.Order_db, exists bool, err error)
	SearchOrders(data models.OrderSearchData) (orders []models.Order_db, err error)
	SetPaymentStatus(orderId string, isPaid bool) (err error)
}

type OrderRepo struct {
	col *mongo.Collection
	ctx context.Context
}

func NewOrderRepository(db *mongo.Database, _ctx context.Context) (OrderRepository, error) {
	if db == nil {
		return nil, errors.New("db must be non-nil")
	}
	err := db.Client().Ping(_ctx, nil)
	if err != nil {
		return nil, err
	}
	return &OrderRepo{
		col: db.Collection("orders"),
		ctx: _ctx,
	}, nil
}

func (o *OrderRepo) CreateOrder(order models.Order_db) (orderId string, err error) {
	order.Id = primitive.NewObjectID()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	_, e := o.col.InsertOne(o.ctx, order)
	if e != nil {
		log.Printf("CreateOrder: %v", e)
		err = models.ErrStorageUnavailable
		return
	}
	orderId = order.Id.Hex()
	return
}

func (o *OrderRepo) GetOrderById(orderId string) (order models.Order_db, exists bool, err error) {
	oid, e := primitive.ObjectIDFromHex(orderId)
	if e != nil {
		return
	}
	e = o.col.FindOne(o.ctx, bson.M{"_id": oid}).Decode(&order)
	if e != nil {
		if e == mongo.ErrNoDocuments {
			return
		}
		log.Printf("GetOrderById: %v", e)
		err = models.ErrStorageUnavailable
		return
	}
	exists = true
	return
}

// SearchOrders builds the filter the same way for the user history, the
// seller listing and the back-office customer views. SettledOnly keeps
// only orders visible to buyers: COD orders or paid ones.
func (o *OrderRepo) SearchOrders(data models.OrderSearchData) (orders []models.Order_db, err error) {
	clauses := []bson.M{}

	if data.UserId != nil {
		clauses = append(clauses, bson.M{"userId": *data.UserId})
	}
	if data.AddressId != nil || data.GuestPhone != nil {
		linked := []bson.M{}
		if data.AddressId != nil {
			linked = append(linked, bson.M{"address": *data.AddressId})
		}
		if data.GuestPhone != nil {
			linked = append(linked, bson.M{"guestAddress.phone": *data.GuestPhone})
		}
		clauses = append(clauses, bson.M{"$or": linked})
	}
	if data.SettledOnly {
		clauses = append(clauses, bson.M{"$or": []bson.M{
			{"paymentType": "COD"},
			{"isPaid": true},
		}})
	}

	filter := bson.M{}
	if len(clauses) == 1 {
		filter = clauses[0]
	} else if len(clauses) > 1 {
		filter = bson.M{"$and": clauses}
	}

	cur, e := o.col.Find(o.ctx, filter, options.Find().SetSort(bson.M{"createdAt": -1}))
	if e != nil {
		log.Printf("SearchOrders: %v", e)
		err = models.ErrStorageUnavailable
		return
	}
	err = cur.All(o.ctx, &orders)
	if err != nil {
		log.Printf("SearchOrders: %v", err)
		err = models.ErrStorageUnavailable
	}
	return
}

func (o *OrderRepo) SetPaymentStatus(orderId string, isPaid bool) (err error) {
	oid, e := primitive.ObjectIDFromHex(orderId)
	if e != nil {
		err = models.ErrNotFound
		return
	}
	res, e := o.col.UpdateOne(o.ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"isPaid": isPaid}})
	if e != nil {
		log.Printf("SetPaymentStatus: %v", e)
		err = models.ErrStorageUnavailable
		return
	}
	if res.MatchedCount == 0 {
		err = models.ErrNotFound
	}
	return
}
