package render

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"retail/store"
)

// JSON は v をJSONで書き出します。
func JSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// Error は {"message": ...} 形式のエラーを返します。
func Error(w http.ResponseWriter, message string, statusCode int) {
	JSON(w, statusCode, map[string]string{"message": message})
}

// StoreError はストアのエラーを種類に応じたステータスに変換します。
//   - ValidationError → 400 (メッセージをそのまま表示)
//   - ErrNotFound     → 404
//   - それ以外         → 500
func StoreError(w http.ResponseWriter, err error, fallback string) {
	var ve *store.ValidationError
	switch {
	case errors.As(err, &ve):
		Error(w, ve.Message, http.StatusBadRequest)
	case errors.Is(err, store.ErrNotFound):
		Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Printf("ERROR: %s: %v", fallback, err)
		Error(w, fallback, http.StatusInternalServerError)
	}
}

// DecodeJSON はリクエストボディを v に読み込みます。失敗時は 400 を返して false です。
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Error(w, "リクエストが不正です。", http.StatusBadRequest)
		return false
	}
	return true
}

// RequireMethod はメソッドが一致しない場合に 405 を返して false です。
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		Error(w, "許可されていないメソッドです。", http.StatusMethodNotAllowed)
		return false
	}
	return true
}
