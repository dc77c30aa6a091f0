package config

import "github.com/kelseyhightower/envconfig"

type Config struct {
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`
	MongoURI   string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDB    string `envconfig:"MONGO_DB" default:"grocerstore"`
	RedisHost  string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort  string `envconfig:"REDIS_PORT" default:"6379"`
}

func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
