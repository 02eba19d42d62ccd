package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a JSON body into dst. An empty body leaves dst unchanged.
func decodeJSON(w http.ResponseWriter, r *http.Request, op string, dst interface{}) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// currentUserID returns the authenticated caller's ID set by middleware.AuthRequired.
func currentUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	u, ok := middleware.CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return "", false
	}
	return u.ID, true
}

func queryString(r *http.Request, key string) *string {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return nil
	}
	return &value
}

func queryInt(r *http.Request, key string) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter", key)
	}
	return n, nil
}

func queryBool(r *http.Request, key string) (*bool, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s parameter", key)
	}
	return &b, nil
}

// queryPaging reads page and limit. It writes a 400 and reports false on bad input.
func queryPaging(w http.ResponseWriter, r *http.Request) (page, limit int, ok bool) {
	page, err := queryInt(r, "page")
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return 0, 0, false
	}
	limit, err = queryInt(r, "limit")
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return 0, 0, false
	}
	return page, limit, true
}
