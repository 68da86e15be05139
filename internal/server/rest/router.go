package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(
		RequestID(),
		Observe(s.logger, s.metrics),
		Recover(),
		chimiddleware.CleanPath,
		CORS(s.config.AllowedOrigins),
		Timeout(s.config.RequestTimeout),
	)

	r.NotFound(HTTPHandler(func(http.ResponseWriter, *http.Request) Response {
		return Response{Code: http.StatusNotFound, Message: "route not found"}
	}).ServeHTTP)
	r.MethodNotAllowed(HTTPHandler(func(http.ResponseWriter, *http.Request) Response {
		return Response{Code: http.StatusMethodNotAllowed, Message: "method not allowed"}
	}).ServeHTTP)

	r.Get("/", s.root)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Method(http.MethodPost, "/jwt-auth", HTTPHandler(s.issueSession))
	r.Method(http.MethodPost, "/logout", HTTPHandler(s.logout))

	r.Method(http.MethodGet, "/get-food", HTTPHandler(s.listFood))
	r.Method(http.MethodGet, "/get-featured-food", HTTPHandler(s.featuredFood))
	r.Method(http.MethodGet, "/get-sorted-food", HTTPHandler(s.sortedFood))
	r.Method(http.MethodGet, "/get-food-details/{id}", HTTPHandler(s.foodDetails))

	r.Group(func(r chi.Router) {
		r.Use(s.Session)

		r.Method(http.MethodGet, "/jwt-get", HTTPHandler(s.currentSession))

		r.Method(http.MethodPost, "/add-food", HTTPHandler(s.addFood))
		r.Method(http.MethodPatch, "/update-food/{id}", HTTPHandler(s.updateFood))
		r.Method(http.MethodDelete, "/delete-food/{id}", HTTPHandler(s.deleteFood))
		r.Method(http.MethodGet, "/get-food-requests/{id}", HTTPHandler(s.foodRequests))

		r.Method(http.MethodPut, "/add-user-food", HTTPHandler(s.putRecord(s.added)))
		r.Method(http.MethodPatch, "/update-user-food/{id}", HTTPHandler(s.updateRecord(s.added)))
		r.Method(http.MethodDelete, "/delete-user-food/{id}/{fid}", HTTPHandler(s.pullRecord(s.added)))
		r.Method(http.MethodGet, "/get-user-food/{id}", HTTPHandler(s.getRecord(s.added)))

		r.Method(http.MethodPut, "/add-requested-food", HTTPHandler(s.putRecord(s.requested)))
		r.Method(http.MethodPatch, "/update-requested-food/{id}", HTTPHandler(s.updateRecord(s.requested)))
		r.Method(http.MethodDelete, "/delete-requested-food/{id}/{fid}", HTTPHandler(s.pullRecord(s.requested)))
		r.Method(http.MethodGet, "/get-requested-food/{id}", HTTPHandler(s.getRecord(s.requested)))

		if s.images != nil {
			r.Method(http.MethodPost, "/food-image-upload-url", HTTPHandler(s.imageUploadURL))
		}
	})

	return r
}
