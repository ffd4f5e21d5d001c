package http

import (
	"net/http"

	"github.com/aussiebroadwan/inventory/internal/inventory/domain"
	"github.com/aussiebroadwan/inventory/internal/inventory/service"
	"github.com/aussiebroadwan/inventory/pkg/authsdk"
	"github.com/aussiebroadwan/inventory/pkg/httpx"
)

// VendorsHandler serves the caller's vendors. Vendors of other users are
// reported as not found.
type VendorsHandler struct {
	Vendors *service.VendorService
}

// HandleList godoc
//
//	@Summary	List vendors
//	@Tags		Vendors
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	authsdk.VendorList
//	@Failure	401	{object}	authsdk.APIError
//	@Router		/v1/vendors [get].
func (h *VendorsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.Vendors.List(r.Context(), caller(r.Context()))
	if err != nil {
		writeServiceError(w, r, err, authsdk.ErrVendorNotFound)
		return
	}

	out := authsdk.VendorList{Vendors: make([]authsdk.Vendor, 0, len(vendors))}
	for _, v := range vendors {
		out.Vendors = append(out.Vendors, vendor(v))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate godoc
//
//	@Summary	Create vendor
//	@Tags		Vendors
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		authsdk.VendorRequest	true	"Vendor name"
//	@Success	201		{object}	authsdk.Vendor
//	@Failure	400		{object}	authsdk.APIError
//	@Failure	401		{object}	authsdk.APIError
//	@Router		/v1/vendors [post].
func (h *VendorsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var body authsdk.VendorRequest
	if err := httpx.DecodeJSON(r, &body); err != nil {
		authsdk.ErrInvalidBody.WriteError(w)
		return
	}

	v, err := h.Vendors.Create(r.Context(), caller(r.Context()), body.Vendor)
	if err != nil {
		writeServiceError(w, r, err, authsdk.ErrVendorNotFound)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, vendor(v))
}

// HandleGet godoc
//
//	@Summary	Get vendor
//	@Tags		Vendors
//	@Security	BearerAuth
//	@Produce	json
//	@Param		vendorID	path		string	true	"Vendor ID"
//	@Success	200			{object}	authsdk.Vendor
//	@Failure	400			{object}	authsdk.APIError	"Malformed ID"
//	@Failure	401			{object}	authsdk.APIError
//	@Failure	404			{object}	authsdk.APIError	"Absent or not owned by the caller"
//	@Router		/v1/vendors/{vendorID} [get].
func (h *VendorsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	v, err := h.Vendors.Get(r.Context(), caller(r.Context()), r.PathValue("vendorID"))
	if err != nil {
		writeServiceError(w, r, err, authsdk.ErrVendorNotFound)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vendor(v))
}

// HandleUpdate godoc
//
//	@Summary	Rename vendor
//	@Tags		Vendors
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		vendorID	path		string					true	"Vendor ID"
//	@Param		body		body		authsdk.VendorRequest	true	"New name"
//	@Success	200			{object}	authsdk.Vendor
//	@Failure	400			{object}	authsdk.APIError
//	@Failure	401			{object}	authsdk.APIError
//	@Failure	404			{object}	authsdk.APIError	"Absent or not owned by the caller"
//	@Router		/v1/vendors/{vendorID} [put].
func (h *VendorsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var body authsdk.VendorRequest
	if err := httpx.DecodeJSON(r, &body); err != nil {
		authsdk.ErrInvalidBody.WriteError(w)
		return
	}

	v, err := h.Vendors.Update(r.Context(), caller(r.Context()), r.PathValue("vendorID"), body.Vendor)
	if err != nil {
		writeServiceError(w, r, err, authsdk.ErrVendorNotFound)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vendor(v))
}

// HandleDelete godoc
//
//	@Summary	Delete vendor
//	@Tags		Vendors
//	@Security	BearerAuth
//	@Param		vendorID	path	string	true	"Vendor ID"
//	@Success	204
//	@Failure	400	{object}	authsdk.APIError
//	@Failure	401	{object}	authsdk.APIError
//	@Failure	404	{object}	authsdk.APIError	"Absent or not owned by the caller"
//	@Router		/v1/vendors/{vendorID} [delete].
func (h *VendorsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Vendors.Delete(r.Context(), caller(r.Context()), r.PathValue("vendorID")); err != nil {
		writeServiceError(w, r, err, authsdk.ErrVendorNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func vendor(v domain.Vendor) authsdk.Vendor {
	return authsdk.Vendor{
		ID:        v.ID.String(),
		Name:      v.Name,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
