package main

import (
	"log"
	"net/http"

	"retail/database"
	"retail/render"
	"retail/store"
)

type statusResponse struct {
	Loading     bool                      `json:"loading"`
	Collections []database.CollectionInfo `json:"collections"`
}

// StatusHandler は読み込み中フラグと保存済みコレクションの一覧を返します。
func StatusHandler(st *store.Store, kv *database.KVStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collections, err := kv.ListCollections()
		if err != nil {
			log.Printf("ERROR: failed to list collections: %v", err)
			render.Error(w, "保存状態の取得に失敗しました。", http.StatusInternalServerError)
			return
		}
		render.JSON(w, http.StatusOK, statusResponse{Loading: st.Loading(), Collections: collections})
	}
}

// ReloadHandler は保存データからメモリ上の状態を読み直します。
func ReloadHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !render.RequireMethod(w, r, http.MethodPost) {
			return
		}
		st.Load()
		render.JSON(w, http.StatusOK, map[string]int{
			"products":     len(st.Products()),
			"sales":        len(st.Sales()),
			"expenses":     len(st.Expenses()),
			"customers":    len(st.Customers()),
			"transactions": len(st.Transactions()),
		})
	}
}

// ClearDataHandler は全データを削除します。
func ClearDataHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !render.RequireMethod(w, r, http.MethodPost) {
			return
		}
		if err := st.Reset(); err != nil {
			render.StoreError(w, err, "データの削除に失敗しました。")
			return
		}
		log.Println("INFO: all data cleared")
		render.JSON(w, http.StatusOK, map[string]string{"message": "全データを削除しました。"})
	}
}
