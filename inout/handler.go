package inout

import (
	"net/http"

	"retail/model"
	"retail/render"
	"retail/store"
)

// GetTransactionsHandler は入出庫履歴を新しい順に返します。
func GetTransactionsHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, st.TransactionHistory())
	}
}

// RecordTransactionHandler は入庫(in)・出庫(out)を記録します。
func RecordTransactionHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !render.RequireMethod(w, r, http.MethodPost) {
			return
		}
		var input model.NewTransaction
		if !render.DecodeJSON(w, r, &input) {
			return
		}
		t, err := st.RecordTransaction(input)
		if err != nil {
			render.StoreError(w, err, "入出庫の記録に失敗しました。")
			return
		}
		render.JSON(w, http.StatusCreated, t)
	}
}
