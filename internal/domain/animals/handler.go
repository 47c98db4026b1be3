package animals

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/apperr"
	"pet-adoption/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/animals", func(ar chi.Router) {
		// Catálogo (cualquier usuario autenticado)
		ar.Get("/", listAnimalsHandler(svc))
		ar.Get("/{animalID}", getAnimalHandler(svc))

		// Alta (admin)
		ar.Post("/", createAnimalHandler(svc))
	})
}

type createAnimalRequest struct {
	Name        string `json:"name"`
	Species     string `json:"species"`
	Breed       string `json:"breed"`
	Sex         string `json:"sex"`
	Size        string `json:"size"`
	BirthDate   string `json:"birth_date"` // YYYY-MM-DD opcional
	Description string `json:"description"`
	PhotoURL    string `json:"photo_url"`
}

type AnimalResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Species     Species    `json:"species"`
	Breed       string     `json:"breed"`
	Sex         Sex        `json:"sex"`
	Size        Size       `json:"size,omitempty"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	Description string     `json:"description"`
	PhotoURL    string     `json:"photo_url,omitempty"`
	State       State      `json:"state"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// createAnimalHandler godoc
// @Summary Registrar animal
// @Description Publica un animal en el catálogo con estado `available`. Solo administradores (rol `admin` o capability `adoptions:admin`).
// @Tags animals
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Role header string false "Solo en modo dev, `admin` para actuar como administrador"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createAnimalRequest true "Datos del animal; birth_date en formato YYYY-MM-DD"
// @Success 201 {object} AnimalResponse
// @Failure 400 {object} map[string]string "invalid json"
// @Failure 401 {object} map[string]string "unauthorized"
// @Failure 403 {object} map[string]string "forbidden"
// @Failure 422 {object} map[string]string "validation"
// @Router /animals [post]
func createAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			apperr.WriteStatus(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
			return
		}

		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apperr.WriteStatus(w, http.StatusBadRequest, "invalid_json", "invalid json")
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				apperr.WriteHTTP(w, apperr.Validation("birth_date must be YYYY-MM-DD"))
				return
			}
			bd = &t
		}

		a, err := svc.Create(r.Context(), auth.ActorFrom(claims), CreateInput{
			Name:        req.Name,
			Species:     req.Species,
			Breed:       req.Breed,
			Sex:         req.Sex,
			Size:        req.Size,
			BirthDate:   bd,
			Description: req.Description,
			PhotoURL:    req.PhotoURL,
		})
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, ToResponse(a))
	}
}

// listAnimalsHandler godoc
// @Summary Listar animales
// @Description Lista el catálogo. Por defecto solo muestra animales `available`; `state=all` devuelve todos.
// @Tags animals
// @Produce json
// @Param state query string false "available | reserved | adopted | all"
// @Param species query string false "dog | cat | other"
// @Param limit query int false "Máximo de resultados"
// @Success 200 {array} AnimalResponse
// @Router /animals [get]
func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			apperr.WriteStatus(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
			return
		}

		q := r.URL.Query()
		f := ListFilter{State: StateAvailable}

		switch raw := strings.TrimSpace(q.Get("state")); raw {
		case "":
		case "all":
			f.State = ""
		default:
			st, ok := ParseState(raw)
			if !ok {
				apperr.WriteHTTP(w, apperr.Validation("state must be available, reserved, adopted or all"))
				return
			}
			f.State = st
		}

		if raw := strings.TrimSpace(q.Get("species")); raw != "" {
			sp, ok := ParseSpecies(raw)
			if !ok {
				apperr.WriteHTTP(w, apperr.Validation("species must be dog, cat or other"))
				return
			}
			f.Species = sp
		}

		if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				apperr.WriteHTTP(w, apperr.Validation("limit must be a positive integer"))
				return
			}
			f.Limit = n
		}

		items, err := svc.List(r.Context(), f)
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}

		out := make([]AnimalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, ToResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			apperr.WriteStatus(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
			return
		}

		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(a))
	}
}

// ToResponse se exporta porque la vista de fase del postulante embebe el animal.
func ToResponse(a Animal) AnimalResponse {
	return AnimalResponse{
		ID:          a.ID,
		Name:        a.Name,
		Species:     a.Species,
		Breed:       a.Breed,
		Sex:         a.Sex,
		Size:        a.Size,
		BirthDate:   a.BirthDate,
		Description: a.Description,
		PhotoURL:    a.PhotoURL,
		State:       a.State,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
