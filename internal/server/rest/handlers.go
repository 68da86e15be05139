package rest

import (
	"net/http"
	"time"

	"github.com/MethuParoi/share-bites-server-codebase/internal/common"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/auth"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/models"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/services"
	"github.com/go-chi/chi/v5"
)

func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ShareBites server running"))
}

// sessionEmail is the owner identity of an authenticated request.
func sessionEmail(r *http.Request) (string, error) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return "", common.ErrMissingToken
	}
	return claims.Email, nil
}

func (s *Server) sessionCookie(value string, maxAge int) *http.Cookie {
	secure, sameSite := s.config.CookieSecurity()
	return &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	}
}

type sessionRequest struct {
	Email string `json:"email"`
}

func (s *Server) issueSession(w http.ResponseWriter, r *http.Request) Response {
	var req sessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return Fail(err)
	}

	token, err := s.sessions.Issue(req.Email)
	if err != nil {
		return Fail(err)
	}
	if s.metrics != nil {
		s.metrics.IncSessionsIssued()
	}

	http.SetCookie(w, s.sessionCookie(token, int(s.sessions.TTL()/time.Second)))
	return Response{Code: http.StatusOK, Message: "session issued"}
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) Response {
	http.SetCookie(w, s.sessionCookie("", -1))
	return Response{Code: http.StatusOK, Message: "logged out"}
}

type sessionInfo struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Server) currentSession(w http.ResponseWriter, r *http.Request) Response {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return Fail(common.ErrMissingToken)
	}

	info := sessionInfo{Email: claims.Email}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return OK(info)
}

func (s *Server) addFood(w http.ResponseWriter, r *http.Request) Response {
	email, err := sessionEmail(r)
	if err != nil {
		return Fail(err)
	}

	var entry models.FoodEntry
	if err := decodeJSON(w, r, &entry); err != nil {
		return Fail(err)
	}

	created, err := s.food.Add(r.Context(), email, &entry)
	if err != nil {
		return Fail(err)
	}
	return Created(created)
}

func (s *Server) listFood(w http.ResponseWriter, r *http.Request) Response {
	q := r.URL.Query()
	entries, err := s.food.List(r.Context(), models.FoodFilter{
		DonatorEmail: q.Get("email"),
		Status:       q.Get("status"),
	})
	if err != nil {
		return Fail(err)
	}
	return OK(entries)
}

func (s *Server) featuredFood(w http.ResponseWriter, r *http.Request) Response {
	entries, err := s.food.Featured(r.Context())
	if err != nil {
		return Fail(err)
	}
	return OK(entries)
}

func (s *Server) sortedFood(w http.ResponseWriter, r *http.Request) Response {
	entries, err := s.food.Sorted(r.Context())
	if err != nil {
		return Fail(err)
	}
	return OK(entries)
}

func (s *Server) foodDetails(w http.ResponseWriter, r *http.Request) Response {
	entry, err := s.food.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return Fail(err)
	}
	return OK(entry)
}

func (s *Server) updateFood(w http.ResponseWriter, r *http.Request) Response {
	email, err := sessionEmail(r)
	if err != nil {
		return Fail(err)
	}

	var patch models.FoodPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		return Fail(err)
	}

	res, err := s.food.Update(r.Context(), email, chi.URLParam(r, "id"), patch)
	if err != nil {
		return Fail(err)
	}
	return OK(res)
}

type deleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

func (s *Server) deleteFood(w http.ResponseWriter, r *http.Request) Response {
	email, err := sessionEmail(r)
	if err != nil {
		return Fail(err)
	}

	n, err := s.food.Delete(r.Context(), email, chi.URLParam(r, "id"))
	if err != nil {
		return Fail(err)
	}
	return OK(deleteResult{DeletedCount: n})
}

func (s *Server) foodRequests(w http.ResponseWriter, r *http.Request) Response {
	email, err := sessionEmail(r)
	if err != nil {
		return Fail(err)
	}

	recs, err := s.food.Requests(r.Context(), email, chi.URLParam(r, "id"))
	if err != nil {
		return Fail(err)
	}
	return OK(recs)
}

func (s *Server) putRecord(svc *services.RecordService) HTTPHandler {
	return func(w http.ResponseWriter, r *http.Request) Response {
		email, err := sessionEmail(r)
		if err != nil {
			return Fail(err)
		}

		var in services.RecordInput
		if err := decodeJSON(w, r, &in); err != nil {
			return Fail(err)
		}

		res, err := svc.Put(r.Context(), email, in)
		if err != nil {
			return Fail(err)
		}
		return OK(res)
	}
}

func (s *Server) updateRecord(svc *services.RecordService) HTTPHandler {
	return func(w http.ResponseWriter, r *http.Request) Response {
		email, err := sessionEmail(r)
		if err != nil {
			return Fail(err)
		}

		var patch models.RecordPatch
		if err := decodeJSON(w, r, &patch); err != nil {
			return Fail(err)
		}

		res, err := svc.Update(r.Context(), email, chi.URLParam(r, "id"), patch)
		if err != nil {
			return Fail(err)
		}
		return OK(res)
	}
}

type pullResult struct {
	ModifiedCount int64 `json:"modifiedCount"`
}

func (s *Server) pullRecord(svc *services.RecordService) HTTPHandler {
	return func(w http.ResponseWriter, r *http.Request) Response {
		email, err := sessionEmail(r)
		if err != nil {
			return Fail(err)
		}

		n, err := svc.Pull(r.Context(), email, chi.URLParam(r, "id"), chi.URLParam(r, "fid"))
		if err != nil {
			return Fail(err)
		}
		return OK(pullResult{ModifiedCount: n})
	}
}

func (s *Server) getRecord(svc *services.RecordService) HTTPHandler {
	return func(w http.ResponseWriter, r *http.Request) Response {
		email, err := sessionEmail(r)
		if err != nil {
			return Fail(err)
		}

		rec, err := svc.Get(r.Context(), email, chi.URLParam(r, "id"))
		if err != nil {
			return Fail(err)
		}
		return OK(rec)
	}
}

func (s *Server) imageUploadURL(w http.ResponseWriter, r *http.Request) Response {
	up, err := s.images.PresignUpload(r.Context())
	if err != nil {
		return Fail(err)
	}
	return OK(up)
}
