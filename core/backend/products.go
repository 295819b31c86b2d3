package backend

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"github.com/relabs-tech/catalog/core/catalog"
	"github.com/relabs-tech/catalog/core/logger"
)

type productResponse struct {
	Message   string `json:"message"`
	ProductID int    `json:"productID"`
}

// readProduct reads and validates a full product body, for create and replace.
func (b *Backend) readProduct(r *http.Request) (*catalog.Product, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if err := b.validator.ValidateString(string(body), "product"); err != nil {
		return nil, err
	}
	product := catalog.Product{}
	if err := json.Unmarshal(body, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (b *Backend) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := b.products.List(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).WithError(err).Errorln("cannot list products")
		http.Error(w, "Failed to retrieve products", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (b *Backend) createProduct(w http.ResponseWriter, r *http.Request) {
	rlog := logger.FromContext(r.Context())

	product, err := b.readProduct(r)
	if err != nil {
		http.Error(w, "All fields are required: productName, description, quantity, price", http.StatusBadRequest)
		return
	}

	id, err := b.products.Create(r.Context(), *product)
	if err != nil {
		rlog.WithError(err).Errorln("cannot create product")
		http.Error(w, "Failed to add product", http.StatusInternalServerError)
		return
	}

	rlog.Infoln("created product", id)
	writeJSON(w, http.StatusCreated, productResponse{Message: "Product added successfully", ProductID: id})
}

func (b *Backend) replaceProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	product, err := b.readProduct(r)
	if err != nil {
		http.Error(w, "All fields are required: productName, description, quantity, price", http.StatusBadRequest)
		return
	}

	err = b.products.Replace(r.Context(), id, *product)
	if errors.Is(err, catalog.ErrNotFound) {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.FromContext(r.Context()).WithError(err).Errorln("cannot replace product", id)
		http.Error(w, "Failed to update product", http.StatusInternalServerError)
		return
	}

	fmt.Fprint(w, "Product updated successfully")
}

func (b *Backend) patchProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	fields := map[string]interface{}{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &fields); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	err = b.products.PartialUpdate(r.Context(), id, fields)
	var unknownField *catalog.UnknownFieldError
	switch {
	case errors.Is(err, catalog.ErrEmptyUpdate):
		http.Error(w, "At least one field must be provided for update", http.StatusBadRequest)
	case errors.As(err, &unknownField):
		http.Error(w, "Unknown field: "+unknownField.Field, http.StatusBadRequest)
	case errors.Is(err, catalog.ErrNotFound):
		http.Error(w, "Product not found", http.StatusNotFound)
	case err != nil:
		logger.FromContext(r.Context()).WithError(err).Errorln("cannot update product", id)
		http.Error(w, "Failed to update product", http.StatusInternalServerError)
	default:
		fmt.Fprint(w, "Product updated successfully (partial)")
	}
}

func (b *Backend) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	err := b.products.Delete(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.FromContext(r.Context()).WithError(err).Errorln("cannot delete product", id)
		http.Error(w, "Failed to delete product", http.StatusInternalServerError)
		return
	}

	fmt.Fprint(w, "Product deleted successfully")
}
