package main

import (
	"context"
	"net/http"
	"time"

	"grocerStore/config"
	"grocerStore/handlers"
	"grocerStore/repository"
	"grocerStore/services"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var db *mongo.Database
var rdb *redis.Client

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	initStores(cfg)
	defer db.Client().Disconnect(context.Background())
	defer rdb.Close()

	ctx := context.Background()
	uR, err := repository.NewUserRepository(db, ctx)
	sR, err2 := repository.NewSessionRepository(rdb, ctx)
	pR, _ := repository.NewProductRepository(db, ctx)
	aR, _ := repository.NewAddressRepository(db, ctx)
	cartR, _ := repository.NewCartRepository(rdb, ctx)
	oR, _ := repository.NewOrderRepository(db, ctx)
	if err != nil {
		panic(err)
	}
	log.Printf("mongo connected")
	if err2 != nil {
		panic(err2)
	}
	log.Printf("redis connected")

	cstService := services.NewCustomerService(aR, oR, uR)
	hp := handlers.HandlerParams{
		UsrService: services.NewUserService(uR, sR),
		PrdService: services.NewProductService(pR),
		CrtService: services.NewCartService(pR, cartR),
		CstService: cstService,
		OrdService: services.NewOrderService(pR, cartR, oR, cstService),
		PrcService: services.NewPricingService(pR),
	}
	ha := handlers.NewHandler(hp)
	router := mux.NewRouter()
	router.Use(ha.ErrorHandleMiddleware)
	subAuth := router.NewRoute().Subrouter()
	subAuth.Use(ha.AuthMiddleware)
	subSeller := router.NewRoute().Subrouter()
	subSeller.Use(ha.SellerAuthMiddleware)

	router.HandleFunc("/users/signup", ha.Signup).Methods("POST")
	router.HandleFunc("/users/signin", ha.Signin).Methods("POST")
	subAuth.HandleFunc("/users/logout", ha.Logout).Methods("POST")

	subAuth.HandleFunc("/cart", ha.GetCart).Methods("GET")
	subAuth.HandleFunc("/cart/update", ha.UpdateCart).Methods("POST")
	router.HandleFunc("/cart/total", ha.GetCartTotal).Methods("POST")

	router.HandleFunc("/order/cod", ha.PlaceOrderCOD).Methods("POST")
	subAuth.HandleFunc("/order/user", ha.GetUserOrders).Methods("GET")
	subSeller.HandleFunc("/order/seller", ha.GetAllOrders).Methods("GET")
	subSeller.HandleFunc("/order/createBill", ha.CreateBill).Methods("POST")
	subSeller.HandleFunc("/order/{id:[0-9a-fA-F]+}", ha.GetOrderById).Methods("GET")
	subSeller.HandleFunc("/order/{id:[0-9a-fA-F]+}/toggle-payment", ha.TogglePaymentStatus).Methods("POST")

	subSeller.HandleFunc("/customer/all", ha.GetAllCustomers).Methods("GET")
	subSeller.HandleFunc("/customer/{id:[0-9a-fA-F]+}", ha.GetCustomerById).Methods("GET")
	subSeller.HandleFunc("/customer/{id:[0-9a-fA-F]+}/update", ha.UpdateCustomer).Methods("POST")

	router.HandleFunc("/product/list", ha.ListProducts).Methods("GET")
	router.HandleFunc("/product/category/{category}", ha.GetProductsByCategory).Methods("GET")
	router.HandleFunc("/product/{id:[0-9a-fA-F]+}", ha.GetProduct).Methods("GET")
	router.HandleFunc("/product/{id:[0-9a-fA-F]+}/price", ha.GetProductPrice).Methods("GET")
	subSeller.HandleFunc("/product/create", ha.CreateProduct).Methods("POST")
	subSeller.HandleFunc("/product/{id:[0-9a-fA-F]+}/update", ha.UpdateProduct).Methods("POST")

	log.Printf("starting server...")
	http.ListenAndServe(cfg.ListenAddr, router)
}

func initStores(cfg config.Config) {
	ctx, cncl := context.WithTimeout(context.Background(), 5*time.Second)
	defer cncl()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		panic(err)
	}
	if err = client.Ping(ctx, nil); err != nil {
		panic("mongo is not working: " + err.Error())
	}
	db = client.Database(cfg.MongoDB)

	rdb = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisHost + ":" + cfg.RedisPort,
		Password: "",
		DB:       0,
	})
	if status := rdb.Ping(ctx); status.Err() != nil {
		panic("redis is not working: " + status.Err().Error())
	}
}
