package controllers

import (
	"errors"
	"flixmap/internal/crawler"
	"flixmap/internal/models"
	"flixmap/internal/providers"
	"flixmap/internal/services"
	"net/http"
	"strconv"
)

type MappingController struct {
	logger  providers.Logger
	service services.MappingServiceInterface
	store   *models.MappingStore
}

func NewMappingController(logger providers.Logger, service services.MappingServiceInterface, store *models.MappingStore) *MappingController {
	return &MappingController{
		logger:  logger,
		service: service,
		store:   store,
	}
}

type mappingResponse struct {
	Found bool `json:"found"`
	models.Mapping
	Source services.Source `json:"source"`
}

type notFoundResponse struct {
	Found bool   `json:"found"`
	Error string `json:"error"`
}

type latestResponse struct {
	ID    int   `json:"id"`
	Found *bool `json:"found,omitempty"`
}

// Forward serves GET /map/tmdb/{id}?type=movie|tv. The type defaults to movie.
func (mc *MappingController) Forward(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, notFoundResponse{Error: "Invalid TMDB ID"})
		return
	}
	t := models.Movie
	if raw := r.URL.Query().Get("type"); raw != "" {
		parsed, ok := models.ParseContentType(raw)
		if !ok {
			writeJSON(w, http.StatusBadRequest, notFoundResponse{Error: "type must be movie or tv"})
			return
		}
		t = parsed
	}

	res, err := mc.service.Resolve(r.Context(), id, t)
	if err != nil {
		mc.writeFailure(w, err, "Not found on FlixHQ")
		return
	}
	writeJSON(w, http.StatusOK, mappingResponse{Found: true, Mapping: res.Mapping, Source: res.Source})
}

// Reverse serves GET /map/flix/{slug...}.
func (mc *MappingController) Reverse(w http.ResponseWriter, r *http.Request) {
	res, err := mc.service.ResolveReverse(r.Context(), r.PathValue("slug"))
	if err != nil {
		mc.writeFailure(w, err, "TMDB match not found for this FlixHQ content")
		return
	}
	writeJSON(w, http.StatusOK, mappingResponse{Found: true, Mapping: res.Mapping, Source: res.Source})
}

func (mc *MappingController) writeFailure(w http.ResponseWriter, err error, notFound string) {
	status := statusFor(err)
	message := publicMessage(mc.logger, providers.TypeMapper, err)
	switch {
	case errors.Is(err, services.ErrInvalidID):
		message = "Invalid TMDB ID"
	case status == http.StatusNotFound:
		message = notFound
	}
	writeJSON(w, status, notFoundResponse{Error: message})
}

// Latest serves GET /getlatest?type=ascending|descending|other[&content=movie|tv].
func (mc *MappingController) Latest(w http.ResponseWriter, r *http.Request) {
	var t models.ContentType
	if raw := r.URL.Query().Get("content"); raw != "" {
		parsed, ok := models.ParseContentType(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "content must be movie or tv")
			return
		}
		t = parsed
	}

	id, ok := crawler.Latest(mc.store, r.URL.Query().Get("type"), t)
	if !ok {
		found := false
		writeJSON(w, http.StatusOK, latestResponse{ID: 0, Found: &found})
		return
	}
	writeJSON(w, http.StatusOK, latestResponse{ID: id})
}
