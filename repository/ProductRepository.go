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

// ProductRepository is the product catalog. The cart and order layers
// only read it; the seller back-office writes through it.
type ProductRepository interface {
	GetProductById(id string) (pModel models.Product_db, exists bool, err error)
	ListProducts() (prods []models.Product_db, err error)
	GetProductsByCategory(category string) (prods []models.Product_db, err error)
	CreateProduct(pModel models.Product_db) (id string, err error)
	UpdateProductById(id string, upd models.ProductUpdate) (updatedProd models.Product_db, err error)
}

type ProductRepo struct {
	col *mongo.Collection
	ctx context.Context
}

func NewProductRepository(db *mongo.Database, _ctx context.Context) (ProductRepository, error) {
	if db == nil {
		return nil, errors.New("db must be non-nil")
	}
	err := db.Client().Ping(_ctx, nil)
	if err != nil {
		return nil, err
	}
	return &ProductRepo{
		col: db.Collection("products"),
		ctx: _ctx,
	}, nil
}

func (p *ProductRepo) GetProductById(id string) (pModel models.Product_db, exists bool, err error) {
	oid, e := primitive.ObjectIDFromHex(id)
	if e != nil {
		// not a document id at all, treat as absent
		return
	}
	e = p.col.FindOne(p.ctx, bson.M{"_id": oid}).Decode(&pModel)
	if e != nil {
		if e == mongo.ErrNoDocuments {
			return
		}
		log.Printf("GetProductById: %v", e)
		err = models.ErrStorageUnavailable
		return
	}
	exists = true
	return
}

func (p *ProductRepo) ListProducts() (prods []models.Product_db, err error) {
	cur, e := p.col.Find(p.ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if e != nil {
		log.Printf("ListProducts: %v", e)
		err = models.ErrStorageUnavailable
		return
	}
	err = p.decodeAll(cur, &prods)
	return
}

func (p *ProductRepo) GetProductsByCategory(category string) (prods []models.Product_db, err error) {
	cur, e := p.col.Find(p.ctx, bson.M{"category": category})
	if e != nil {
		log.Printf("GetProductsByCategory: %v", e)
		err = models.ErrStorageUnavailable
		return
	}
	err = p.decodeAll(cur, &prods)
	return
}

func (p *ProductRepo) decodeAll(cur *mongo.Cursor, prods *[]models.Product_db) (err error) {
	err = cur.All(p.ctx, prods)
	if err != nil {
		log.Printf("decodeAll: %v", err)
		err = models.ErrStorageUnavailable
	}
	return
}

func (p *ProductRepo) CreateProduct(pModel models.Product_db) (id string, err error) {
	pModel.Id = primitive.NewObjectID()
	pModel.CreatedAt = time.Now().UTC()
	_, e := p.col.InsertOne(p.ctx, pModel)
	if e != nil {
		log.Printf("CreateProduct: %v", e)
		err = models.ErrStorageUnavailable
		return
	}
	id = pModel.Id.Hex()
	return
}

func (p *ProductRepo) UpdateProductById(id string, upd models.ProductUpdate) (updatedProd models.Product_db, err error) {
	oid, e := primitive.ObjectIDFromHex(id)
	if e != nil {
		err = models.ErrNotFound
		return
	}

	set := bson.M{}
	if upd.Name != "" {
		set["name"] = upd.Name
	}
	if upd.Description != "" {
		set["description"] = upd.Description
	}
	if upd.Category != "" {
		set["category"] = upd.Category
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.OfferPrice != nil {
		set["offerPrice"] = *upd.OfferPrice
	}
	if upd.Weights != nil {
		set["weights"] = upd.Weights
	}
	if upd.InStock != nil {
		set["inStock"] = *upd.InStock
	}
	if len(set) == 0 {
		err = models.ErrBadRequest
		return
	}

	after := options.After
	e = p.col.FindOneAndUpdate(p.ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(after)).Decode(&updatedProd)
	if e != nil {
		if e == mongo.ErrNoDocuments {
			err = models.ErrNotFound
			return
		}
		log.Printf("UpdateProductById: %v", e)
		err = models.ErrStorageUnavailable
	}
	return
}
