package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
	"splinter-planner/internal/domain"
	"splinter-planner/internal/gamedata"
	"splinter-planner/internal/service"
)

// PlannerServer is the JSON HTTP surface over the planner, deck and player
// services.
type PlannerServer struct {
	plannerSvc *service.PlannerService
	decksSvc   *service.DecksService
	playerSvc  *service.PlayerService
	logger     zerolog.Logger
}

func NewPlannerServer(plannerSvc *service.PlannerService, decksSvc *service.DecksService, playerSvc *service.PlayerService, logger zerolog.Logger) *PlannerServer {
	return &PlannerServer{plannerSvc: plannerSvc, decksSvc: decksSvc, playerSvc: playerSvc, logger: logger}
}

// RegisterRoutes mounts all handlers on the mux.
func (s *PlannerServer) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/planner", s.handlePlanner)
	mux.HandleFunc("POST /api/decks", s.handleDecks)
	mux.HandleFunc("GET /api/player/{name}/cards", s.handlePlayerCards)
	mux.HandleFunc("GET /api/leagues", s.handleLeagues)
	mux.HandleFunc("GET /api/rulesets", s.handleRulesets)
	mux.HandleFunc("GET /health", s.handleHealth)
}

type plannerRequest struct {
	Form       domain.BattleForm `json:"form"`
	Subscribed bool              `json:"subscribed"`
	Currency   domain.Currency   `json:"currency"`
}

func (s *PlannerServer) handlePlanner(w http.ResponseWriter, r *http.Request) {
	var req plannerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.plannerSvc.GetPlannerDocuments(r.Context(), req.Form, req.Subscribed, req.Currency)
	if err != nil {
		s.writeServiceError(w, r, err, "planner compose failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type decksRequest struct {
	Teams      []domain.DeckDocument `json:"teams"`
	Form       domain.BattleForm     `json:"form"`
	Subscribed bool                  `json:"subscribed"`
	Currency   domain.Currency       `json:"currency"`
}

func (s *PlannerServer) handleDecks(w http.ResponseWriter, r *http.Request) {
	var req decksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	decks, err := s.decksSvc.UpdateTeams(r.Context(), req.Teams, req.Form, req.Subscribed, req.Currency)
	if err != nil {
		s.writeServiceError(w, r, err, "deck update failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"teams": decks})
}

func (s *PlannerServer) handlePlayerCards(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	cards, err := s.playerSvc.GetPlayerCards(r.Context(), name)
	if err != nil {
		s.writeServiceError(w, r, err, "player cards fetch failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"player": name, "cards": cards})
}

// handleLeagues returns the league table, or a single classification when a
// rating is supplied.
func (s *PlannerServer) handleLeagues(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	ratingParam := q.Get("rating")
	if ratingParam == "" {
		writeJSON(w, http.StatusOK, map[string]any{"leagues": gamedata.Leagues})
		return
	}

	rating, err := strconv.Atoi(ratingParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, "rating must be an integer")
		return
	}

	power := 0
	if powerParam := q.Get("power"); powerParam != "" {
		power, err = strconv.Atoi(powerParam)
		if err != nil {
			writeError(w, http.StatusBadRequest, "power must be an integer")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"league": gamedata.LeagueFor(rating, power)})
}

func (s *PlannerServer) handleRulesets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"rulesets":  gamedata.Rulesets,
		"manaCaps":  gamedata.ManaCaps,
		"splinters": gamedata.Splinters,
	})
}

func (s *PlannerServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *PlannerServer) writeServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logger := zerolog.Ctx(r.Context())
	logger.Error().Err(err).Msg(msg)

	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrCardNotFound):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusBadGateway, "upstream dependency failed, try again")
	}
}
