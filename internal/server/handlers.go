package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"toolcrib/internal/shared"

	"github.com/google/uuid"
)

func firstN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

type API struct {
	Service *Service
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(io.LimitReader(r.Body, 2<<20))
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

// fail maps a service error to its response status. Validation and
// conflict codes vary per resource (the user surface reports both as
// 400, assets report validation as 422, a held asset is a 409).
func (a *API) fail(w http.ResponseWriter, err error, validationCode, conflictCode int) {
	var ve *ValidationError
	var code int
	switch {
	case errors.As(err, &ve):
		code = validationCode
	case errors.Is(err, ErrNotFound):
		code = 404
	case errors.Is(err, ErrForbidden):
		code = 403
	case errors.Is(err, ErrConflict):
		code = conflictCode
	case errors.Is(err, ErrInvalidTransition):
		code = 400
	default:
		log.Printf("internal error: %v", err)
		writeJSON(w, 500, shared.ErrorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, code, shared.ErrorResponse{Error: err.Error()})
}

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, shared.HealthResponse{Status: "ok"})
}

// Users

func userOut(u UserRecord) shared.UserOut {
	return shared.UserOut{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role)}
}

func (a *API) ListUsers(w http.ResponseWriter, r *http.Request, caller Identity) {
	users, err := a.Service.ListUsers(caller)
	if err != nil {
		a.fail(w, err, 400, 400)
		return
	}
	out := make([]shared.UserOut, 0, len(users))
	for _, u := range users {
		out = append(out, userOut(u))
	}
	writeJSON(w, 200, out)
}

func (a *API) GetUser(w http.ResponseWriter, r *http.Request, caller Identity) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, 404, shared.ErrorResponse{Error: "user not found"})
		return
	}
	u, err := a.Service.GetUser(caller, id)
	if err != nil {
		a.fail(w, err, 400, 400)
		return
	}
	writeJSON(w, 200, userOut(u))
}

func (a *API) CreateUser(w http.ResponseWriter, r *http.Request, caller Identity) {
	body, err := readBody(r)
	if err != nil {
		writeJSON(w, 400, shared.ErrorResponse{Error: "bad body"})
		return
	}
	var req shared.UserRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, 400, shared.ErrorResponse{Error: "bad json"})
		return
	}
	rec, err := NormalizeUser(req)
	if err != nil {
		a.fail(w, err, 400, 400)
		return
	}
	created, err := a.Service.CreateUser(caller, rec)
	if err != nil {
		a.fail(w, err, 400, 400)
		return
	}
	writeJSON(w, 201, userOut(created))
}

func (a *API) UpdateUser(w http.ResponseWriter, r *http.Request, caller Identity) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, 404, shared.ErrorResponse{Error: "user not found"})
		return
	}
	body, err := readBody(r)
	if err != nil {
		writeJSON(w, 400, shared.ErrorResponse{Error: "bad body"})
		return
	}
	var req shared.UserRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, 400, shared.ErrorResponse{Error: "bad json"})
		return
	}
	rec, err := NormalizeUser(req)
	if err != nil {
		a.fail(w, err, 400, 400)
		return
	}
	updated, err := a.Service.UpdateUser(caller, id, rec)
	if err != nil {
		a.fail(w, err, 400, 400)
		return
	}
	writeJSON(w, 200, userOut(updated))
}

func (a *API) DeleteUser(w http.ResponseWriter, r *http.Request, caller Identity) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, 404, shared.ErrorResponse{Error: "user not found"})
		return
	}
	deleted, err := a.Service.DeleteUser(caller, id)
	if err != nil {
		a.fail(w, err, 400, 400)
		return
	}
	writeJSON(w, 200, shared.MessageResponse{Message: fmt.Sprintf("User %s deleted", deleted.Name)})
}

// Assets

func assetOut(a AssetRecord) shared.AssetOut {
	return shared.AssetOut{ID: a.ID, Title: a.Title, InvID: a.InvID}
}

func (a *API) ListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := a.Service.ListAssets()
	if err != nil {
		a.fail(w, err, 422, 409)
		return
	}
	out := make([]shared.AssetOut, 0, len(assets))
	for _, rec := range assets {
		out = append(out, assetOut(rec))
	}
	writeJSON(w, 200, out)
}

func (a *API) GetAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, 404, shared.ErrorResponse{Error: "asset not found"})
		return
	}
	rec, err := a.Service.GetAsset(id)
	if err != nil {
		a.fail(w, err, 422, 409)
		return
	}
	writeJSON(w, 200, assetOut(rec))
}

func (a *API) CreateAsset(w http.ResponseWriter, r *http.Request, caller Identity) {
	body, err := readBody(r)
	if err != nil {
		writeJSON(w, 400, shared.ErrorResponse{Error: "bad body"})
		return
	}
	var req shared.AssetRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, 400, shared.ErrorResponse{Error: "bad json"})
		return
	}
	rec, err := NormalizeAsset(req)
	if err != nil {
		a.fail(w, err, 422, 409)
		return
	}
	created, err := a.Service.CreateAsset(caller, rec)
	if err != nil {
		a.fail(w, err, 422, 409)
		return
	}
	writeJSON(w, 201, assetOut(created))
}

func (a *API) UpdateAsset(w http.ResponseWriter, r *http.Request, caller Identity) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, 404, shared.ErrorResponse{Error: "asset not found"})
		return
	}
	body, err := readBody(r)
	if err != nil {
		writeJSON(w, 400, shared.ErrorResponse{Error: "bad body"})
		return
	}
	var req shared.AssetRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, 400, shared.ErrorResponse{Error: "bad json"})
		return
	}
	rec, err := NormalizeAsset(req)
	if err != nil {
		a.fail(w, err, 422, 409)
		return
	}
	updated, err := a.Service.UpdateAsset(caller, id, rec)
	if err != nil {
		a.fail(w, err, 422, 409)
		return
	}
	writeJSON(w, 200, assetOut(updated))
}

func (a *API) DeleteAsset(w http.ResponseWriter, r *http.Request, caller Identity) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, 404, shared.ErrorResponse{Error: "asset not found"})
		return
	}
	deleted, err := a.Service.DeleteAsset(caller, id)
	if err != nil {
		a.fail(w, err, 422, 409)
		return
	}
	writeJSON(w, 200, shared.MessageResponse{Message: fmt.Sprintf("Asset %s deleted", deleted.Title)})
}

// Checkouts

func checkoutOut(c CheckoutRecord) shared.CheckoutOut {
	return shared.CheckoutOut{
		ID:      c.ID,
		AssetID: c.AssetID,
		DueAt:   c.DueAt,
		Status:  string(c.Status),
		OwnerID: c.OwnerID,
	}
}

func (a *API) ListCheckouts(w http.ResponseWriter, r *http.Request, caller Identity) {
	checkouts, err := a.Service.ListCheckouts(caller)
	if err != nil {
		a.fail(w, err, 400, 409)
		return
	}
	out := make([]shared.CheckoutOut, 0, len(checkouts))
	for _, c := range checkouts {
		out = append(out, checkoutOut(c))
	}
	writeJSON(w, 200, out)
}

func (a *API) GetCheckout(w http.ResponseWriter, r *http.Request, caller Identity) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, 404, shared.ErrorResponse{Error: "checkout not found"})
		return
	}
	c, err := a.Service.GetCheckout(caller, id)
	if err != nil {
		a.fail(w, err, 400, 409)
		return
	}
	writeJSON(w, 200, checkoutOut(c))
}

func (a *API) CreateCheckout(w http.ResponseWriter, r *http.Request, caller Identity) {
	body, err := readBody(r)
	if err != nil {
		writeJSON(w, 400, shared.ErrorResponse{Error: "bad body"})
		return
	}
	var req shared.CheckoutRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, 400, shared.ErrorResponse{Error: "bad json"})
		return
	}
	assetID, dueAt, status, err := NormalizeCheckout(req, time.Now())
	if err != nil {
		a.fail(w, err, 400, 409)
		return
	}
	created, err := a.Service.CreateCheckout(caller, assetID, dueAt, status)
	if err != nil {
		a.fail(w, err, 400, 409)
		return
	}
	writeJSON(w, 201, checkoutOut(created))
}

func (a *API) UpdateCheckout(w http.ResponseWriter, r *http.Request, caller Identity) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, 404, shared.ErrorResponse{Error: "checkout not found"})
		return
	}
	body, err := readBody(r)
	if err != nil {
		writeJSON(w, 400, shared.ErrorResponse{Error: "bad body"})
		return
	}
	var req shared.CheckoutRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, 400, shared.ErrorResponse{Error: "bad json"})
		return
	}
	assetID, dueAt, status, err := NormalizeCheckout(req, time.Now())
	if err != nil {
		a.fail(w, err, 400, 409)
		return
	}
	updated, err := a.Service.UpdateCheckout(caller, id, assetID, dueAt, status)
	if err != nil {
		a.fail(w, err, 400, 409)
		return
	}
	writeJSON(w, 200, checkoutOut(updated))
}

func (a *API) DeleteCheckout(w http.ResponseWriter, r *http.Request, caller Identity) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, 404, shared.ErrorResponse{Error: "checkout not found"})
		return
	}
	deleted, err := a.Service.DeleteCheckout(caller, id)
	if err != nil {
		a.fail(w, err, 400, 409)
		return
	}
	writeJSON(w, 200, shared.MessageResponse{Message: fmt.Sprintf("Checkout %d deleted", deleted.ID)})
}

// Routes wires every endpoint onto a fresh mux.
func (a *API) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", a.Health)

	mux.HandleFunc("GET /users", a.RequireUser(a.ListUsers))
	mux.HandleFunc("GET /users/{id}", a.RequireUser(a.GetUser))
	mux.HandleFunc("POST /users", a.RequireUser(a.CreateUser))
	mux.HandleFunc("PUT /users/{id}", a.RequireUser(a.UpdateUser))
	mux.HandleFunc("DELETE /users/{id}", a.RequireUser(a.DeleteUser))

	// asset reads are public
	mux.HandleFunc("GET /assets", a.ListAssets)
	mux.HandleFunc("GET /assets/{id}", a.GetAsset)
	mux.HandleFunc("POST /assets", a.RequireUser(a.CreateAsset))
	mux.HandleFunc("PUT /assets/{id}", a.RequireUser(a.UpdateAsset))
	mux.HandleFunc("DELETE /assets/{id}", a.RequireUser(a.DeleteAsset))

	mux.HandleFunc("GET /checkouts", a.RequireUser(a.ListCheckouts))
	mux.HandleFunc("GET /checkouts/{id}", a.RequireUser(a.GetCheckout))
	mux.HandleFunc("POST /checkouts", a.RequireUser(a.CreateCheckout))
	mux.HandleFunc("PUT /checkouts/{id}", a.RequireUser(a.UpdateCheckout))
	mux.HandleFunc("DELETE /checkouts/{id}", a.RequireUser(a.DeleteCheckout))
	return mux
}

// LogRequests tags each request with a short id and logs the method and
// path before handing off.
func LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := firstN(uuid.NewString(), 8)
		log.Printf("http: id=%s method=%s path=%s", reqID, r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
