package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"

	"github.com/nexcard/ecard-services/internal/cardsvc/export"
	"github.com/nexcard/ecard-services/internal/cardsvc/service"
)

type Handler struct {
	tokenAuth   *jwtauth.JWTAuth
	cards       *service.CardService
	auth        *service.AuthService
	templateDir string
}

func NewHandler(tokenAuth *jwtauth.JWTAuth, cards *service.CardService, auth *service.AuthService, templateDir string) *Handler {
	return &Handler{
		tokenAuth:   tokenAuth,
		cards:       cards,
		auth:        auth,
		templateDir: templateDir,
	}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func (rs *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	json.NewEncoder(w).Encode(rsp)
}

// ErrorResponse maps service errors onto the response envelope.
func (rs *Handler) ErrorResponse(w http.ResponseWriter, err error) {
	var verr service.ValidationError

	switch {
	case errors.As(err, &verr):
		rs.CreateResponse(w, Response{Message: verr.Error(), Code: http.StatusBadRequest, Error: verr.Error()})
	case errors.Is(err, service.ErrNotFound):
		rs.CreateResponse(w, Response{Message: "not found", Code: http.StatusNotFound, Error: err.Error()})
	case errors.Is(err, service.ErrDuplicateUser):
		rs.CreateResponse(w, Response{Message: "user already exists", Code: http.StatusBadRequest, Error: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		rs.CreateResponse(w, Response{Message: "invalid credentials", Code: http.StatusUnauthorized, Error: err.Error()})
	default:
		log.Errorf("request failed: %v", err)
		rs.CreateResponse(w, Response{Message: "internal error", Code: http.StatusInternalServerError, Error: "internal error"})
	}
}

// readTemplate loads the raw master template page.
func (h *Handler) readTemplate() (string, error) {
	raw, err := os.ReadFile(filepath.Join(h.templateDir, export.TemplateFile))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "card service is running at port " + os.Getenv("CARD_SERVICE_PORT"),
		Code:    200,
		Data:    nil,
	}
	json.NewEncoder(w).Encode(rsp)
}
