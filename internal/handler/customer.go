package handler

import (
	"net/http"

	"github.com/pkordes/frontdesk/internal/domain"
)

// Customer is one guest registry entry in the customer list.
type Customer struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	Nationality string `json:"nationality"`
	Gender      string `json:"gender"`
	IDType      string `json:"idType"`
	IDNumber    string `json:"idNumber"`
}

// CustomerListResponse is the body of GET /customers.
type CustomerListResponse struct {
	Data       []Customer `json:"data"`
	Pagination Pagination `json:"pagination"`
	Warnings   []string   `json:"warnings"`
}

// ListCustomers handles GET /customers.
// Supports ?search=, ?missingRegistration=true, ?page=, ?limit= and ?refresh=true.
func (s *Server) ListCustomers(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, domain.ModuleCustomerList, domain.ActionView) {
		return
	}

	q := newQuery(r)
	search := q.str("search")
	missing := q.boolean("missingRegistration")
	page, limit := q.intPtr("page"), q.intPtr("limit")
	refresh := q.boolean("refresh")
	if err := q.err(); err != nil {
		requestError(w, err.Error())
		return
	}
	pageReq, err := domain.NewPageRequest(page, limit, domain.CustomerPageSizes)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	list, err := s.customers.List(r.Context(), domain.CustomerQuery{
		Search:              search,
		MissingRegistration: missing,
		Page:                pageReq,
	}, refresh)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data := make([]Customer, len(list.Page.Rows))
	for i, c := range list.Page.Rows {
		data[i] = Customer(c)
	}
	writeJSON(w, http.StatusOK, CustomerListResponse{
		Data:       data,
		Pagination: paginationOf(list.Page),
		Warnings:   warningsOrEmpty(list.Warnings),
	})
}
