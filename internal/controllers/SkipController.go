package controllers

import (
	"bytes"
	"errors"
	"flixmap/internal/models"
	"flixmap/internal/providers"
	"flixmap/internal/services"
	"io"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
)

const adminSecretHeader = "X-Admin-Secret"

type SkipController struct {
	logger  providers.Logger
	service services.SkipServiceInterface
}

func NewSkipController(logger providers.Logger, service services.SkipServiceInterface) *SkipController {
	return &SkipController{
		logger:  logger,
		service: service,
	}
}

type submitPayload struct {
	Intro services.RawInterval `json:"intro"`
	Outro services.RawInterval `json:"outro"`
}

type votePayload struct {
	ID        string `json:"id" validate:"required"`
	Direction string `json:"direction" validate:"required|in:upvote,downvote"`
}

type verifyPayload struct {
	ID     string `json:"id" validate:"required"`
	Secret string `json:"secret"`
}

type secretPayload struct {
	Secret string `json:"secret"`
}

type bestResponse struct {
	Found      bool                    `json:"found"`
	EpisodeKey string                  `json:"episodeKey"`
	Best       *models.SkipSubmission  `json:"best"`
	All        []models.SkipSubmission `json:"all"`
}

type submissionResponse struct {
	Success    bool                  `json:"success"`
	Submission models.SkipSubmission `json:"submission"`
}

type removedResponse struct {
	Success bool `json:"success"`
	Removed int  `json:"removed"`
}

func episodeKey(r *http.Request) (models.EpisodeKey, error) {
	var nums [3]int
	for i, name := range []string{"id", "season", "episode"} {
		n, err := strconv.Atoi(r.PathValue(name))
		if err != nil || n < 0 {
			return models.EpisodeKey{}, errors.New(name + " must be a non-negative integer")
		}
		nums[i] = n
	}
	if nums[0] == 0 {
		return models.EpisodeKey{}, errors.New("id must be positive")
	}
	return models.EpisodeKey{TmdbID: nums[0], Season: nums[1], Episode: nums[2]}, nil
}

// adminSecret prefers the secret field of a JSON body and falls back to the
// X-Admin-Secret header. An empty body is allowed.
func adminSecret(w http.ResponseWriter, r *http.Request) (string, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
	if err != nil {
		return "", err
	}
	var payload secretPayload
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			return "", err
		}
	}
	if payload.Secret != "" {
		return payload.Secret, nil
	}
	return r.Header.Get(adminSecretHeader), nil
}

func (sc *SkipController) fail(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), publicMessage(sc.logger, providers.TypeSkip, err))
}

// Best serves GET /skip/{id}/{season}/{episode}.
func (sc *SkipController) Best(w http.ResponseWriter, r *http.Request) {
	key, err := episodeKey(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := sc.service.BestFor(key)
	if errors.Is(err, services.ErrNotFound) {
		writeJSON(w, http.StatusOK, bestResponse{EpisodeKey: key.String(), All: []models.SkipSubmission{}})
		return
	}
	if err != nil {
		sc.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bestResponse{Found: true, EpisodeKey: key.String(), Best: &res.Best, All: res.All})
}

// Submit serves POST /skip/{id}/{season}/{episode}.
func (sc *SkipController) Submit(w http.ResponseWriter, r *http.Request) {
	key, err := episodeKey(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var payload submitPayload
	if err := decodeBody(w, r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request")
		return
	}
	sub, err := sc.service.Submit(key, payload.Intro, payload.Outro)
	if err != nil {
		sc.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, submissionResponse{Success: true, Submission: sub})
}

// Vote serves POST /skip/vote.
func (sc *SkipController) Vote(w http.ResponseWriter, r *http.Request) {
	var payload votePayload
	if err := decodeBody(w, r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request")
		return
	}
	if v := validate.Struct(&payload); !v.Validate() {
		writeError(w, http.StatusBadRequest, v.Errors.One())
		return
	}
	sub, err := sc.service.Vote(payload.ID, payload.Direction)
	if err != nil {
		sc.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, submissionResponse{Success: true, Submission: sub})
}

// Verify serves POST /skip/verify.
func (sc *SkipController) Verify(w http.ResponseWriter, r *http.Request) {
	var payload verifyPayload
	if err := decodeBody(w, r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request")
		return
	}
	if v := validate.Struct(&payload); !v.Validate() {
		writeError(w, http.StatusBadRequest, v.Errors.One())
		return
	}
	secret := payload.Secret
	if secret == "" {
		secret = r.Header.Get(adminSecretHeader)
	}
	sub, err := sc.service.Verify(payload.ID, secret)
	if err != nil {
		sc.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, submissionResponse{Success: true, Submission: sub})
}

// PurgeEpisode serves DELETE /skip/{id}/{season}/{episode}.
func (sc *SkipController) PurgeEpisode(w http.ResponseWriter, r *http.Request) {
	key, err := episodeKey(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	secret, err := adminSecret(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request")
		return
	}
	removed, err := sc.service.PurgeEpisode(key, secret)
	if err != nil {
		sc.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, removedResponse{Success: true, Removed: removed})
}

// PurgeAll serves DELETE /skip.
func (sc *SkipController) PurgeAll(w http.ResponseWriter, r *http.Request) {
	secret, err := adminSecret(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request")
		return
	}
	removed, err := sc.service.PurgeAll(secret)
	if err != nil {
		sc.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, removedResponse{Success: true, Removed: removed})
}
