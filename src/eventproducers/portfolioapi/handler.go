package portfolioapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	log "github.com/sirupsen/logrus"

	"github.com/idiazm/optrack/src/eventconsumers"
	"github.com/idiazm/optrack/src/eventmodels"
)

var (
	worker  *eventconsumers.PortfolioWorker
	decoder = schema.NewDecoder()
)

type errorResponse struct {
	Type      string `json:"type"`
	Msg       string `json:"message"`
	RequestID string `json:"request_id"`
}

func setResponse(response interface{}, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		return fmt.Errorf("setResponse: encode: %w", err)
	}

	return nil
}

func setErrorResponse(errType string, statusCode int, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := errorResponse{
		Type:      errType,
		Msg:       err.Error(),
		RequestID: uuid.NewString(),
	}

	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		log.Errorf("setErrorResponse: encode: %v", encodeErr)
	}
}

func handlePositions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(404)
		return
	}

	positions := worker.Positions()

	response := make(map[eventmodels.PositionKey]*eventmodels.PositionDTO, len(positions))
	for key, position := range positions {
		response[key] = position.ToDTO()
	}

	if err := setResponse(response, w); err != nil {
		setErrorResponse("handlePositions: failed to set response", 500, err, w)
	}
}

func handleAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(404)
		return
	}

	account := worker.Account()

	if err := setResponse(account, w); err != nil {
		setErrorResponse("handleAccount: failed to set response", 500, err, w)
	}
}

type strategyResponse struct {
	ID        string                     `json:"id"`
	Type      string                     `json:"type"`
	Positions []*eventmodels.PositionDTO `json:"positions"`
}

func handleStrategies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(404)
		return
	}

	strategies := worker.Strategies()

	response := make(map[eventmodels.StrategyID]*strategyResponse, len(strategies))
	for id, strategy := range strategies {
		positions := make([]*eventmodels.PositionDTO, 0, len(strategy.Positions))
		for _, position := range strategy.Positions {
			positions = append(positions, position.ToDTO())
		}

		response[id] = &strategyResponse{
			ID:        string(strategy.ID),
			Type:      string(strategy.Type),
			Positions: positions,
		}
	}

	if err := setResponse(response, w); err != nil {
		setErrorResponse("handleStrategies: failed to set response", 500, err, w)
	}
}

type underlyingsRequest struct {
	Fields []string `schema:"fields"`
}

func handleUnderlyings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(404)
		return
	}

	var request underlyingsRequest
	if err := decoder.Decode(&request, r.URL.Query()); err != nil {
		setErrorResponse("handleUnderlyings: failed to decode query", 400, err, w)
		return
	}

	quotes := worker.Underlyings()

	if len(request.Fields) == 0 {
		if err := setResponse(quotes, w); err != nil {
			setErrorResponse("handleUnderlyings: failed to set response", 500, err, w)
		}
		return
	}

	response := make(map[string]map[string]float64, len(quotes))
	for code, quote := range quotes {
		row := make(map[string]float64, len(request.Fields))
		for _, field := range request.Fields {
			value, err := quote.FieldValue(field)
			if err != nil {
				setErrorResponse("handleUnderlyings: unknown field", 400, err, w)
				return
			}

			row[field] = value
		}

		response[code] = row
	}

	if err := setResponse(response, w); err != nil {
		setErrorResponse("handleUnderlyings: failed to set response", 500, err, w)
	}
}

type chainRequest struct {
	Symbol string `schema:"symbol"`
}

func handleChain(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(404)
		return
	}

	var request chainRequest
	if err := decoder.Decode(&request, r.URL.Query()); err != nil {
		setErrorResponse("handleChain: failed to decode query", 400, err, w)
		return
	}

	if request.Symbol == "" {
		setErrorResponse("handleChain: missing symbol", 400, fmt.Errorf("symbol query parameter is required"), w)
		return
	}

	chain, err := worker.OptionChain(r.Context(), request.Symbol)
	if err != nil {
		setErrorResponse("handleChain: failed to fetch chain", 400, err, w)
		return
	}

	response := make([]*eventmodels.OptionContractDTO, 0, len(chain))
	for _, contract := range chain {
		response = append(response, contract.ToDTO())
	}

	if err := setResponse(response, w); err != nil {
		setErrorResponse("handleChain: failed to set response", 500, err, w)
	}
}

type matrixRequest struct {
	Field string `schema:"field"`
}

func handleUnderlyingsMatrix(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(404)
		return
	}

	var request matrixRequest
	if err := decoder.Decode(&request, r.URL.Query()); err != nil {
		setErrorResponse("handleUnderlyingsMatrix: failed to decode query", 400, err, w)
		return
	}

	view, err := worker.ColumnView(request.Field)
	if err != nil {
		setErrorResponse("handleUnderlyingsMatrix: failed to project field", 400, err, w)
		return
	}

	if err := setResponse(view, w); err != nil {
		setErrorResponse("handleUnderlyingsMatrix: failed to set response", 500, err, w)
	}
}

// SetupHandler mounts the read-only portfolio API on the router. Every
// response is served from the worker's copying accessors, so handlers never
// hold the worker's lock while writing to the client.
func SetupHandler(router *mux.Router, portfolioWorker *eventconsumers.PortfolioWorker) {
	worker = portfolioWorker
	decoder.IgnoreUnknownKeys(true)

	router.HandleFunc("/positions", handlePositions)
	router.HandleFunc("/account", handleAccount)
	router.HandleFunc("/strategies", handleStrategies)
	router.HandleFunc("/underlyings", handleUnderlyings)
	router.HandleFunc("/underlyings/matrix", handleUnderlyingsMatrix)
	router.HandleFunc("/underlyings/chain", handleChain)
}
