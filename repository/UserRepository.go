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
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	GetUserById(id string) (models.User_db, bool, error)
	GetUserByEmail(email string) (models.User_db, bool, error)
	AddNewUser(uModel models.User_db) (newUserId string, err error)
	UpdateUserProfile(id string, name string, email string) (err error)
	EncryptPassword(userPass string) (hashedPassword string, err error)
	VerifyPassword(hashedPassword string, sentPassword string) bool
}

type UserRepo struct {
	col *mongo.Collection
	ctx context.Context
}

func NewUserRepository(db *mongo.Database, _ctx context.Context) (UserRepository, error) {
	if db == nil {
		return nil, errors.New("db must be non-nil")
	}
	err := db.Client().Ping(_ctx, nil)
	if err != nil {
		return nil, err
	}
	return &UserRepo{
		col: db.Collection("users"),
		ctx: _ctx,
	}, nil
}

func (u *UserRepo) GetUserById(id string) (uModel models.User_db, exists bool, err error) {
	oid, e := primitive.ObjectIDFromHex(id)
	if e != nil {
		return
	}
	e = u.col.FindOne(u.ctx, bson.M{"_id": oid}).Decode(&uModel)
	if e != nil {
		if e == mongo.ErrNoDocuments {
			return
		}
		log.Printf("GetUserById: %v", e)
		err = models.ErrStorageUnavailable
		return
	}
	exists = true
	return
}

func (u *UserRepo) GetUserByEmail(email string) (uModel models.User_db, exists bool, err error) {
	e := u.col.FindOne(u.ctx, bson.M{"email": email}).Decode(&uModel)
	if e != nil {
		if e == mongo.ErrNoDocuments {
			return
		}
		log.Printf("GetUserByEmail: %v", e)
		err = models.ErrStorageUnavailable
		return
	}
	exists = true
	return
}

func (u *UserRepo) AddNewUser(uModel models.User_db) (newUserId string, err error) {
	uModel.Id = primitive.NewObjectID()
	uModel.CreatedAt = time.Now().UTC()
	_, e := u.col.InsertOne(u.ctx, uModel)
	if e != nil {
		log.Printf("AddNewUser: %v", e)
		err = models.ErrStorageUnavailable
		return
	}
	newUserId = uModel.Id.Hex()
	return
}

// UpdateUserProfile mirrors customer-record edits onto the linked user
// account; empty values leave the stored ones untouched.
func (u *UserRepo) UpdateUserProfile(id string, name string, email string) (err error) {
	oid, e := primitive.ObjectIDFromHex(id)
	if e != nil {
		err = models.ErrNotFound
		return
	}
	set := bson.M{}
	if name != "" {
		set["name"] = name
	}
	if email != "" {
		set["email"] = email
	}
	if len(set) == 0 {
		return
	}
	_, e = u.col.UpdateOne(u.ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if e != nil {
		log.Printf("UpdateUserProfile: %v", e)
		err = models.ErrStorageUnavailable
	}
	return
}

func (u *UserRepo) EncryptPassword(userPass string) (hashedPassword string, err error) {
	password, e := bcrypt.GenerateFromPassword([]byte(userPass), 8)
	if e != nil {
		log.Printf("EncryptPassword: %v", e)
		err = models.ErrStorageUnavailable
		return
	}
	hashedPassword = string(password)
	return
}

func (u *UserRepo) VerifyPassword(hashedPassword string, sentPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(sentPassword))
	if err != nil {
		log.Printf("VerifyPassword: %v", err)
	}
	return err == nil
}
