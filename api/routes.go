package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	rh "github.com/coreybb/boardroom/route-handlers"
	"github.com/coreybb/boardroom/webutil"
)

const (
	apiBasePath   = "/api"
	boardBasePath = "/board"
)

const (
	searchNewsPath = "/search-news"
	briefPath      = "/brief"
	boardViewPath  = "/view"
)

// RequestTimeout bounds a request; briefs wait on the LLM, so it is generous.
const RequestTimeout = 90 * time.Second

func SetupRoutes(
	searchHandler *rh.SearchHandler,
	briefHandler *rh.BriefHandler,
	boardHandler *rh.BoardHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(RealIP)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(Timeout(RequestTimeout))
	r.Use(SetHeader(webutil.HeaderContentType, webutil.ContentTypeJSONUTF8))

	r.Route(apiBasePath, func(r chi.Router) {
		r.Post(searchNewsPath, webutil.MakeHandler(searchHandler.HandleSearchNews))
		r.Post(briefPath, webutil.MakeHandler(briefHandler.HandleBrief))
		configureBoardAPIRoutes(r, boardHandler)
	})

	configureBoardPageRoutes(r, boardHandler)

	r.Get("/healthz", handleHealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func pathWithParam(basePath string, paramName string) string {
	if basePath == "" {
		return "/{" + paramName + "}"
	}
	return basePath + "/{" + paramName + "}"
}

// POST /api/board, POST /api/board/view, GET /api/board/{token}
func configureBoardAPIRoutes(r chi.Router, handler *rh.BoardHandler) {
	r.Route(boardBasePath, func(r chi.Router) {
		r.Post("/", webutil.MakeHandler(handler.HandleCreateSnapshot))
		r.Post(boardViewPath, webutil.MakeHandler(handler.HandleBoardView))
		r.Get(pathWithParam("", rh.ParamToken), webutil.MakeHandler(handler.HandleTakeSnapshot))
	})
}

// GET /board/{token}, POST /board
func configureBoardPageRoutes(r chi.Router, handler *rh.BoardHandler) {
	r.Get(pathWithParam(boardBasePath, rh.ParamToken), webutil.MakeHandler(handler.HandleBoardPage))
	r.Post(boardBasePath, webutil.MakeHandler(handler.HandleBoardRefilter))
}

func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(webutil.HeaderContentType, webutil.ContentTypeTextPlainUTF8)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
