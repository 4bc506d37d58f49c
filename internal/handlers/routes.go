package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// SetupRoutes wires all handlers into the router. staticDir, when non-empty,
// is served at / for the frontend bundle.
func SetupRoutes(
	sessionHandler *SessionHandler,
	generateHandler *GenerateHandler,
	exportHandler *ExportHandler,
	catalogHandler *CatalogHandler,
	presenterHandler *PresenterHandler,
	staticDir string,
) *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", Health).Methods("GET")
	api.HandleFunc("/providers", generateHandler.ListProviders).Methods("GET")
	api.HandleFunc("/generate", generateHandler.Generate).Methods("POST")
	api.HandleFunc("/export-pptx", exportHandler.ExportDeck).Methods("POST")

	api.HandleFunc("/reference-library/catalog", catalogHandler.ListTemplates).Methods("GET")
	api.HandleFunc("/reference-library/templates", catalogHandler.UploadTemplate).Methods("POST")

	api.HandleFunc("/session", sessionHandler.CreateSession).Methods("POST")
	api.HandleFunc("/session/{id}", sessionHandler.GetSession).Methods("GET")
	api.HandleFunc("/session/{id}", sessionHandler.DeleteSession).Methods("DELETE")
	api.HandleFunc("/session/{id}/title", sessionHandler.SetTitle).Methods("PUT")
	api.HandleFunc("/session/{id}/select", sessionHandler.SelectSlide).Methods("POST")
	api.HandleFunc("/session/{id}/undo", sessionHandler.Undo).Methods("POST")
	api.HandleFunc("/session/{id}/redo", sessionHandler.Redo).Methods("POST")
	api.HandleFunc("/session/{id}/export", exportHandler.ExportSession).Methods("GET")
	api.HandleFunc("/session/{id}/present/ws", presenterHandler.Present).Methods("GET")

	api.HandleFunc("/session/{id}/slides", sessionHandler.AddSlide).Methods("POST")
	api.HandleFunc("/session/{id}/slides/reorder", sessionHandler.ReorderSlides).Methods("POST")
	api.HandleFunc("/session/{id}/slides/{index}", sessionHandler.DeleteSlide).Methods("DELETE")
	api.HandleFunc("/session/{id}/slides/{index}/duplicate", sessionHandler.DuplicateSlide).Methods("POST")
	api.HandleFunc("/session/{id}/slides/{index}/move", sessionHandler.MoveSlide).Methods("POST")
	api.HandleFunc("/session/{id}/slides/{index}/layout", sessionHandler.SetLayout).Methods("PUT")
	api.HandleFunc("/session/{id}/slides/{index}/content", sessionHandler.SetContent).Methods("PUT")
	api.HandleFunc("/session/{id}/slides/{index}/transition", sessionHandler.SetTransition).Methods("PUT")
	api.HandleFunc("/session/{id}/slides/{index}/element-animation", sessionHandler.SetElementAnimation).Methods("PUT")
	api.HandleFunc("/session/{id}/slides/{index}/render", sessionHandler.RenderSlide).Methods("GET")

	if staticDir != "" {
		router.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))
	}
	return router
}
