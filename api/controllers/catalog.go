package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/garagemaster/backend/api/responses"
	"github.com/garagemaster/backend/api/validators"
	catalogsvc "github.com/garagemaster/backend/internal/catalog"
	pkgerrors "github.com/garagemaster/backend/pkg/errors"
	"github.com/garagemaster/backend/pkg/logger"
)

type partRequest struct {
	PartName    string `json:"part_name" validate:"required"`
	PartNumber  string `json:"part_number,omitempty"`
	Category    string `json:"category,omitempty"`
	Price       string `json:"price" validate:"required"`
	BuyingPrice string `json:"buying_price,omitempty"`
	Stock       int    `json:"stock,omitempty" validate:"omitempty,min=0"`
}

func (req partRequest) toInput() (catalogsvc.PartInput, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return catalogsvc.PartInput{}, pkgerrors.New(pkgerrors.CodeValidation, "price must be a decimal amount")
	}
	buying, err := parseOptionalAmount(req.BuyingPrice)
	if err != nil {
		return catalogsvc.PartInput{}, pkgerrors.New(pkgerrors.CodeValidation, "buying_price must be a decimal amount")
	}
	return catalogsvc.PartInput{
		PartName:    validators.SanitizeString(req.PartName, 200),
		PartNumber:  validators.SanitizeString(req.PartNumber, 100),
		Category:    validators.SanitizeString(req.Category, 100),
		Price:       price,
		BuyingPrice: buying,
		Stock:       req.Stock,
	}, nil
}

// CreatePart adds a stocked part to the catalog. Admin only.
func CreatePart(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload partRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		part, err := svc.CreatePart(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, part)
	}
}

// UpdatePart rewrites a part's editable fields. Admin only.
func UpdatePart(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "partId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload partRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		part, err := svc.UpdatePart(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, part)
	}
}

// DeletePart removes a part from the catalog. Admin only.
func DeletePart(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "partId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeletePart(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// GetPart fetches one part.
func GetPart(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "partId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		part, err := svc.GetPart(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, part)
	}
}

// SearchParts finds parts by name or number, optionally within a category.
func SearchParts(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := validators.SanitizeString(r.URL.Query().Get("q"), 200)
		category := validators.SanitizeString(r.URL.Query().Get("category"), 100)

		parts, err := svc.SearchParts(r.Context(), query, category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, parts)
	}
}

// LowStock lists parts at or below the reorder threshold.
func LowStock(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		threshold, err := validators.ParseQueryInt(r, "threshold", 0, 0, 10000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		parts, err := svc.LowStock(r.Context(), threshold)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, parts)
	}
}

type serviceItemRequest struct {
	Name string `json:"name" validate:"required"`
	Cost string `json:"cost" validate:"required"`
}

// CreateServiceItem adds a labour item. Admin only.
func CreateServiceItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload serviceItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cost, err := decimal.NewFromString(payload.Cost)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "cost must be a decimal amount"))
			return
		}

		item, err := svc.CreateServiceItem(r.Context(), catalogsvc.ServiceItemInput{
			Name: validators.SanitizeString(payload.Name, 200),
			Cost: cost,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// UpdateServiceItem rewrites a labour item. Admin only.
func UpdateServiceItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "serviceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload serviceItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cost, err := decimal.NewFromString(payload.Cost)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "cost must be a decimal amount"))
			return
		}

		item, err := svc.UpdateServiceItem(r.Context(), id, catalogsvc.ServiceItemInput{
			Name: validators.SanitizeString(payload.Name, 200),
			Cost: cost,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// DeleteServiceItem removes a labour item. Admin only.
func DeleteServiceItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "serviceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteServiceItem(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ListServiceItems returns the labour price list.
func ListServiceItems(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListServiceItems(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}
