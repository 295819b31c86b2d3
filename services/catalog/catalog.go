package main

import (
	"fmt"
	"net/http"

	"github.com/joeshaw/envdecode"
	"github.com/sirupsen/logrus"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	"github.com/relabs-tech/catalog/core/backend"
	"github.com/relabs-tech/catalog/core/csql"
	"github.com/relabs-tech/catalog/core/logger"
)

// Service holds the configuration for this service
//
// use POSTGRES="host=localhost port=5432 user=postgres password=docker dbname=postgres sslmode=disable"
type Service struct {
	Postgres  string `env:"POSTGRES,required" description:"the connection string for the Postgres DB"`
	Port      int    `env:"PORT,default=3000" description:"the port this service listens on"`
	JWTSecret string `env:"JWT_SECRET,required" description:"the signing secret for bearer tokens"`
}

func main() {
	service := &Service{}
	if err := envdecode.Decode(service); err != nil {
		panic(err)
	}

	logger.InitLogger(logrus.InfoLevel)

	db := csql.OpenWithSchema(service.Postgres, "catalog")
	defer db.Close()

	router := mux.NewRouter()
	logger.AddRequestID(router)
	backend.New(&backend.Builder{
		DB:          db,
		Router:      router,
		TokenSecret: []byte(service.JWTSecret),
	})

	addr := fmt.Sprintf(":%d", service.Port)
	logrus.Infoln("listen on port", addr)
	http.ListenAndServe(addr, handlers.CORS()(router))
}
