package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"grocerStore/entities"
	"grocerStore/models"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// CartRepository is the server-side cart store, one cart per
// authenticated user. Carts are read-modify-written per request;
// concurrent requests from the same user race last-writer-wins.
type CartRepository interface {
	SetCart(userId string, cart entities.Cart) (err error)
	GetCart(userId string) (res entities.Cart, err error)
	ClearCart(userId string) (err error)
}

type CartRepo struct {
	rdb *redis.Client
	ctx context.Context
}

const cartKeyPrefix = "cart:"
const cartTTL = 30 * 24 * time.Hour

func NewCartRepository(redis_conn *redis.Client, _ctx context.Context) (CartRepository, error) {
	if redis_conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := redis_conn.Ping(_ctx).Err()
	if err != nil {
		return nil, err
	}
	return &CartRepo{
		rdb: redis_conn,
		ctx: _ctx,
	}, nil
}

func (c *CartRepo) SetCart(userId string, cart entities.Cart) (err error) {
	jsonData, err := json.Marshal(cart)
	if err != nil {
		log.Printf("SetCart: Marshal: %v", err)
		err = models.ErrStorageUnavailable
		return
	}
	err = c.rdb.Set(c.ctx, cartKeyPrefix+userId, jsonData, cartTTL).Err()
	if err != nil {
		log.Printf("SetCart: %v", err)
		err = models.ErrStorageUnavailable
	}
	return
}

func (c *CartRepo) GetCart(userId string) (res entities.Cart, err error) {
	res = entities.NewCart()
	val, e := c.rdb.Get(c.ctx, cartKeyPrefix+userId).Result()
	if e != nil {
		if e == redis.Nil {
			return
		}
		log.Printf("GetCart: %v", e)
		err = models.ErrStorageUnavailable
		return
	}
	err = json.Unmarshal([]byte(val), &res)
	if err != nil {
		log.Printf("GetCart: Unmarshal: %v", err)
		err = models.ErrStorageUnavailable
		return
	}
	if res.Items == nil {
		res = entities.NewCart()
	}
	return
}

func (c *CartRepo) ClearCart(userId string) (err error) {
	err = c.rdb.Del(c.ctx, cartKeyPrefix+userId).Err()
	if err != nil {
		log.Printf("ClearCart: %v", err)
		err = models.ErrStorageUnavailable
	}
	return
}
