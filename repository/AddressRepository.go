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

// AddressRepository holds the customer directory: one canonical record
// per phone number. The unique sparse index plus UpsertByPhone keep two
// near-simultaneous guest checkouts from creating duplicate records.
type AddressRepository interface {
	GetAddressById(id string) (addr models.Address_db, exists bool, err error)
	GetAddressByPhone(phone string) (addr models.Address_db, exists bool, err error)
	GetAddressByEmail(email string) (addr models.Address_db, exists bool, err error)
	ListAddresses() (addrs []models.Address_db, err error)
	CreateAddress(addr models.Address_db) (id string, err error)
	UpsertAddressByPhone(addr models.Address_db) (id string, err error)
	UpdateAddress(id string, addr models.Address_db) (err error)
}

type AddressRepo struct {
	col *mongo.Collection
	ctx context.Context
}

func NewAddressRepository(db *mongo.Database, _ctx context.Context) (AddressRepository, error) {
	if db == nil {
		return nil, errors.New("db must be non-nil")
	}
	err := db.Client().Ping(_ctx, nil)
	if err != nil {
		return nil, err
	}
	col := db.Collection("addresses")
	_, err = col.Indexes().CreateOne(_ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "phone", Value: 1}},
		Options: options.Index().SetUnique(true).SetSparse(true),
	})
	if err != nil {
		return nil, err
	}
	return &AddressRepo{
		col: col,
		ctx: _ctx,
	}, nil
}

func (a *AddressRepo) findOne(filter bson.M, caller string) (addr models.Address_db, exists bool, err error) {
	e := a.col.FindOne(a.ctx, filter).Decode(&addr)
	if e != nil {
		if e == mongo.ErrNoDocuments {
			return
		}
		log.Printf("%v: %v", caller, e)
		err = models.ErrStorageUnavailable
		return
	}
	exists = true
	return
}

func (a *AddressRepo) GetAddressById(id string) (addr models.Address_db, exists bool, err error) {
	oid, e := primitive.ObjectIDFromHex(id)
	if e != nil {
		return
	}
	return a.findOne(bson.M{"_id": oid}, "GetAddressById")
}

func (a *AddressRepo) GetAddressByPhone(phone string) (addr models.Address_db, exists bool, err error) {
	return a.findOne(bson.M{"phone": phone}, "GetAddressByPhone")
}

func (a *AddressRepo) GetAddressByEmail(email string) (addr models.Address_db, exists bool, err error) {
	return a.findOne(bson.M{"email": email}, "GetAddressByEmail")
}

func (a *AddressRepo) ListAddresses() (addrs []models.Address_db, err error) {
	cur, e := a.col.Find(a.ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if e != nil {
		log.Printf("ListAddresses: %v", e)
		err = models.ErrStorageUnavailable
		return
	}
	err = cur.All(a.ctx, &addrs)
	if err != nil {
		log.Printf("ListAddresses: %v", err)
		err = models.ErrStorageUnavailable
	}
	return
}

func (a *AddressRepo) CreateAddress(addr models.Address_db) (id string, err error) {
	addr.Id = primitive.NewObjectID()
	addr.CreatedAt = time.Now().UTC()
	_, e := a.col.InsertOne(a.ctx, addr)
	if e != nil {
		log.Printf("CreateAddress: %v", e)
		err = models.ErrStorageUnavailable
		return
	}
	id = addr.Id.Hex()
	return
}

// UpsertAddressByPhone creates or replaces the record for a phone number
// atomically, so racing submissions resolve to a single document.
func (a *AddressRepo) UpsertAddressByPhone(addr models.Address_db) (id string, err error) {
	after := options.After
	var res models.Address_db
	e := a.col.FindOneAndUpdate(a.ctx,
		bson.M{"phone": addr.Phone},
		bson.M{
			"$set":         addressFields(addr),
			"$setOnInsert": bson.M{"createdAt": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(after),
	).Decode(&res)
	if e != nil {
		log.Printf("UpsertAddressByPhone: %v", e)
		err = models.ErrStorageUnavailable
		return
	}
	id = res.Id.Hex()
	return
}

func (a *AddressRepo) UpdateAddress(id string, addr models.Address_db) (err error) {
	oid, e := primitive.ObjectIDFromHex(id)
	if e != nil {
		err = models.ErrNotFound
		return
	}
	res, e := a.col.UpdateOne(a.ctx, bson.M{"_id": oid}, bson.M{"$set": addressFields(addr)})
	if e != nil {
		log.Printf("UpdateAddress: %v", e)
		err = models.ErrStorageUnavailable
		return
	}
	if res.MatchedCount == 0 {
		err = models.ErrNotFound
	}
	return
}

func addressFields(addr models.Address_db) bson.M {
	fields := bson.M{
		"firstName": addr.FirstName,
		"lastName":  addr.LastName,
		"email":     addr.Email,
		"street":    addr.Street,
		"city":      addr.City,
		"state":     addr.State,
		"zipcode":   addr.Zipcode,
		"country":   addr.Country,
	}
	if addr.Phone != "" {
		fields["phone"] = addr.Phone
	}
	if addr.UserId != "" {
		fields["userId"] = addr.UserId
	}
	return fields
}
