package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/AYOGRAM01/Jollyshop/api/responses"
	carouselsvc "github.com/AYOGRAM01/Jollyshop/internal/carousel"
	"github.com/AYOGRAM01/Jollyshop/pkg/config"
	pkgerrors "github.com/AYOGRAM01/Jollyshop/pkg/errors"
	"github.com/AYOGRAM01/Jollyshop/pkg/logger"
)

// ListCarousel returns the homepage carousel in display order.
func ListCarousel(svc carouselsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "carousel service unavailable"))
			return
		}

		slides, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"slides": slides})
	}
}

// AdminCreateSlide uploads a carousel slide. The request is a multipart form
// with title, optional link_url and position fields and an image file.
func AdminCreateSlide(svc carouselsvc.Service, storage config.StorageConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "carousel service unavailable"))
			return
		}

		maxBytes := int64(storage.MaxUploadMB) << 20
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		params := carouselsvc.CreateParams{
			Title: strings.TrimSpace(r.FormValue("title")),
		}
		if link := strings.TrimSpace(r.FormValue("link_url")); link != "" {
			params.LinkURL = &link
		}
		if rawPosition := strings.TrimSpace(r.FormValue("position")); rawPosition != "" {
			position, err := strconv.Atoi(rawPosition)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid position"))
				return
			}
			params.Position = position
		}

		file, header, err := r.FormFile("image")
		if err == nil {
			defer file.Close()
			params.Image = file
			params.ImageName = header.Filename
		} else if err != http.ErrMissingFile {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid image upload"))
			return
		}

		slide, err := svc.Create(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, slide)
	}
}

// AdminDeleteSlide removes a carousel slide and its stored image.
func AdminDeleteSlide(svc carouselsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "carousel service unavailable"))
			return
		}

		slideID, err := uuidParam(r, "slideID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), slideID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
