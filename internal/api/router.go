package api

import (
	"brevet-times-service/internal/api/handlers"
	"brevet-times-service/internal/ports"
	"brevet-times-service/internal/services"
	"net/http"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.ControlRepository, calc services.Calculator, loc *time.Location) http.Handler {
	router := mux.NewRouter().StrictSlash(true)

	timesHandler := &handlers.TimesHandler{Calc: calc, Location: loc}
	sheetHandler := &handlers.SheetHandler{Calc: calc, Location: loc, Repo: repo}
	controlHandler := &handlers.ControlHandler{Repo: repo}

	router.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	router.HandleFunc("/_calc_times", timesHandler.CalcTimes).Methods(http.MethodGet)

	apiV1 := router.PathPrefix("/api/v1").Subrouter()
	apiV1.HandleFunc("/sheets", sheetHandler.Build).Methods(http.MethodPost)
	apiV1.HandleFunc("/controls", controlHandler.List).Methods(http.MethodGet)
	apiV1.HandleFunc("/controls", controlHandler.Replace).Methods(http.MethodPost)

	var h http.Handler = router
	h = gorillahandlers.RecoveryHandler(gorillahandlers.RecoveryLogger(recoveryLogger{}))(h)
	h = gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins([]string{"*"}),
		gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", requestIDHeader}),
	)(h)

	return loggingMiddleware(h)
}
