/*Package backend implements the REST API of the catalog service.

It wires user signup and login plus CRUD routes for the products
resource onto a mux router. All product routes require a valid bearer
token issued by signup or login.
*/
package backend

import (
	"context"
	"log"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"github.com/relabs-tech/catalog/core/access"
	"github.com/relabs-tech/catalog/core/catalog"
	"github.com/relabs-tech/catalog/core/credentials"
	"github.com/relabs-tech/catalog/core/csql"
	"github.com/relabs-tech/catalog/core/schema"
)

// userStore is the credential store interface consumed by the handlers
type userStore interface {
	FindByUsername(ctx context.Context, username string) (*credentials.User, error)
	Create(ctx context.Context, username, passwordHash string) (*credentials.User, error)
}

// productStore is the product store interface consumed by the handlers
type productStore interface {
	List(ctx context.Context) ([]catalog.Product, error)
	Create(ctx context.Context, p catalog.Product) (int, error)
	Replace(ctx context.Context, id int, p catalog.Product) error
	PartialUpdate(ctx context.Context, id int, fields map[string]interface{}) error
	Delete(ctx context.Context, id int) error
}

// Backend is the catalog rest backend
type Backend struct {
	users     userStore
	products  productStore
	tokens    *access.TokenService
	validator *schema.Validator
}

// Builder is a builder helper for the Backend
type Builder struct {
	// DB is a postgres database. This is mandatory.
	DB *csql.DB
	// Router is a mux router. This is mandatory.
	Router *mux.Router
	// TokenSecret is the signing secret for bearer tokens. This is mandatory.
	TokenSecret []byte
}

const credentialsSchemaJSON = `{
  "$id": "credentials",
  "type": "object",
  "properties": {
    "username": {"type": "string", "minLength": 1},
    "password": {"type": "string", "minLength": 1}
  },
  "required": ["username", "password"]
}`

const productSchemaJSON = `{
  "$id": "product",
  "type": "object",
  "properties": {
    "productName": {"type": "string", "minLength": 1},
    "description": {"type": "string", "minLength": 1},
    "quantity": {"type": "integer"},
    "price": {"type": "number"}
  },
  "required": ["productName", "description", "quantity", "price"]
}`

// New realizes the actual backend. It creates the sql relations (if they
// do not exist) and adds the routes to the router.
func New(bb *Builder) *Backend {

	if bb.DB == nil {
		panic("DB is missing")
	}
	if bb.Router == nil {
		panic("Router is missing")
	}
	if len(bb.TokenSecret) == 0 {
		panic("TokenSecret is missing")
	}

	b := &Backend{
		users:     credentials.New(bb.DB),
		products:  catalog.New(bb.DB),
		tokens:    access.NewTokenService(bb.TokenSecret),
		validator: mustNewValidator(),
	}
	b.handleRoutes(bb.Router)
	return b
}

func mustNewValidator() *schema.Validator {
	validator, err := schema.NewValidator([]string{credentialsSchemaJSON, productSchemaJSON})
	if err != nil {
		panic(err)
	}
	return validator
}

// handleRoutes adds all handlers to the router. The product routes live
// on a subrouter guarded by the bearer middleware.
func (b *Backend) handleRoutes(router *mux.Router) {
	log.Println("backend: handle routes")
	log.Println("  handle route: /signup POST")
	router.HandleFunc("/signup", b.signup).Methods(http.MethodPost)
	log.Println("  handle route: /login POST")
	router.HandleFunc("/login", b.login).Methods(http.MethodPost)

	protected := router.PathPrefix("/products").Subrouter()
	protected.Use(access.NewBearerMiddleware(b.tokens))
	log.Println("  handle route: /products GET POST")
	protected.HandleFunc("", b.listProducts).Methods(http.MethodGet)
	protected.HandleFunc("", b.createProduct).Methods(http.MethodPost)
	log.Println("  handle route: /products/{id} PUT PATCH DELETE")
	protected.HandleFunc("/{id:[0-9]+}", b.replaceProduct).Methods(http.MethodPut)
	protected.HandleFunc("/{id:[0-9]+}", b.patchProduct).Methods(http.MethodPatch)
	protected.HandleFunc("/{id:[0-9]+}", b.deleteProduct).Methods(http.MethodDelete)
}

func writeJSON(w http.ResponseWriter, status int, object interface{}) {
	jsonData, _ := json.Marshal(object)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(jsonData)
}
