package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"lookup-service/internal/utils"
)

const (
	codeBadRequest = "bad_request"
	codeSchema     = "schema"
	codeInternal   = "internal"
)

type errorBody struct {
	Error    string   `json:"error"`
	Messages []string `json:"messages"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeErrors(w, status, code, []string{msg})
}

func writeErrors(w http.ResponseWriter, status int, code string, msgs []string) {
	writeJSON(w, status, errorBody{Error: code, Messages: msgs})
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil || i < 1 {
		return def
	}
	return i
}

func toBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// toThreshold: пусто — дефолт схемы; "3%" и "0,03" тоже принимаются.
// false — значение не число или вне [0, 1].
func toThreshold(s string, def float64) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, true
	}
	pct := strings.HasSuffix(s, "%")
	f, ok := utils.ParseFloat(strings.TrimSuffix(s, "%"))
	if !ok {
		return 0, false
	}
	if pct {
		f /= 100
	}
	return f, f >= 0 && f <= 1
}
