package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	apperrors "options-payoff/internal/errors"
	"options-payoff/internal/logging"
	"options-payoff/internal/models"
	"options-payoff/internal/payoff"
	"options-payoff/internal/store"
)

// response is the JSON envelope used by every endpoint.
type response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func writeOK(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusOK, response{Success: true, Message: message, Data: data})
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var paramErr *apperrors.ParameterError
	var legErr *apperrors.LegError
	switch {
	case apperrors.As(err, &paramErr), apperrors.As(err, &legErr),
		apperrors.Is(err, apperrors.ErrInvalidRange),
		apperrors.Is(err, apperrors.ErrUnknownStrategy):
		status = http.StatusBadRequest
	case apperrors.Is(err, apperrors.ErrStrategyNotFound):
		status = http.StatusNotFound
	}

	writeJSON(w, status, response{Success: false, Message: err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeOK(w, "ok", map[string]string{"status": "healthy"})
}

// calculateResponse pairs the curve with its derived metrics.
type calculateResponse struct {
	StrategyType models.StrategyType  `json:"strategyType"`
	Curve        models.PayoffCurve   `json:"payoffData"`
	Metrics      models.PayoffMetrics `json:"metrics"`
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req payoff.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid request body: " + err.Error()})
		return
	}

	log := logging.WithStrategy(logging.FromContext(r.Context()), string(req.StrategyType))

	start := time.Now()
	result, err := payoff.Calculate(req)
	if err != nil {
		log.Debug().Err(err).Msg("Calculation rejected")
		writeError(w, err)
		return
	}
	logging.LogCalculation(log, len(result.Curve), time.Since(start))

	writeOK(w, "payoff calculated", calculateResponse{
		StrategyType: req.StrategyType,
		Curve:        result.Curve,
		Metrics:      result.Metrics,
	})
}

type exitRequest struct {
	Legs []models.Leg `json:"legs"`
}

func (s *Server) handleExit(w http.ResponseWriter, r *http.Request) {
	var req exitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid request body: " + err.Error()})
		return
	}
	writeOK(w, "exit P&L calculated", payoff.ExitPnL(req.Legs))
}

func (s *Server) handleCreateStrategy(w http.ResponseWriter, r *http.Request) {
	var strategy models.Strategy
	if err := json.NewDecoder(r.Body).Decode(&strategy); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid request body: " + err.Error()})
		return
	}
	if strategy.Name == "" {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "strategy name is required"})
		return
	}
	if !strategy.Type.Valid() {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "unknown strategy type: " + string(strategy.Type)})
		return
	}
	if strategy.Parameters == nil {
		strategy.Parameters = map[string]string{}
	}

	id, err := s.store.SaveStrategy(r.Context(), &strategy)
	if err != nil {
		writeError(w, err)
		return
	}
	logger := logging.FromContext(r.Context())
	logger.Info().
		Int64("id", id).
		Str("name", strategy.Name).
		Msg("Strategy saved")
	writeJSON(w, http.StatusCreated, response{Success: true, Message: "strategy saved", Data: strategy})
}

func (s *Server) handleListStrategies(w http.ResponseWriter, r *http.Request) {
	filter := store.StrategyFilter{
		Type: models.StrategyType(r.URL.Query().Get("type")),
		Name: r.URL.Query().Get("name"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Offset = n
		}
	}

	strategies, err := s.store.ListStrategies(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if strategies == nil {
		strategies = []models.Strategy{}
	}
	writeOK(w, "strategies listed", strategies)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func (s *Server) handleGetStrategy(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid strategy id"})
		return
	}
	strategy, err := s.store.GetStrategy(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "strategy found", strategy)
}

func (s *Server) handleUpdateStrategy(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid strategy id"})
		return
	}

	var strategy models.Strategy
	if err := json.NewDecoder(r.Body).Decode(&strategy); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid request body: " + err.Error()})
		return
	}
	strategy.ID = id
	if !strategy.Type.Valid() {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "unknown strategy type: " + string(strategy.Type)})
		return
	}

	if err := s.store.UpdateStrategy(r.Context(), &strategy); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "strategy updated", strategy)
}

func (s *Server) handleDeleteStrategy(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "invalid strategy id"})
		return
	}
	if err := s.store.DeleteStrategy(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, "strategy deleted", nil)
}
