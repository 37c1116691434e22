package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Messages shared by handlers and middleware.
const (
	MsgInternal = "Erro interno no servidor"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// BadRequest answers validation and lookup failures with {"error": msg}.
func BadRequest(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}

// Fail answers auth and internal failures with {"erro": msg}.
func Fail(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"erro": msg})
}

func Message(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"mensagem": msg})
}
