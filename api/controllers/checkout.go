package controllers

import (
	"net/http"
	"strings"

	"github.com/AYOGRAM01/Jollyshop/api/responses"
	checkoutsvc "github.com/AYOGRAM01/Jollyshop/internal/checkout"
	"github.com/AYOGRAM01/Jollyshop/pkg/config"
	pkgerrors "github.com/AYOGRAM01/Jollyshop/pkg/errors"
	"github.com/AYOGRAM01/Jollyshop/pkg/logger"
)

// Checkout converts the caller's cart into a pending order. The request is a
// multipart form with a shipping_address field and a proof_of_payment file.
func Checkout(svc checkoutsvc.Service, storage config.StorageConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		maxBytes := int64(storage.MaxUploadMB) << 20
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		params := checkoutsvc.Params{
			ShippingAddress: strings.TrimSpace(r.FormValue("shipping_address")),
		}

		file, header, err := r.FormFile("proof_of_payment")
		if err == nil {
			defer file.Close()
			params.ProofOfPayment = file
			params.ProofOfPaymentName = header.Filename
		} else if err != http.ErrMissingFile {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid proof of payment upload"))
			return
		}

		result, err := svc.Checkout(r.Context(), userID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
