package sale

import (
	"net/http"
	"sort"

	"retail/model"
	"retail/render"
	"retail/store"
)

// ListSalesHandler は売上を新しい順に返します。
func ListSalesHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sales := st.Sales()
		sort.SliceStable(sales, func(i, j int) bool {
			return sales[i].Date.After(sales[j].Date)
		})
		render.JSON(w, http.StatusOK, sales)
	}
}

// RecordSaleHandler は売上を登録します。在庫不足の場合は 400 です。
func RecordSaleHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !render.RequireMethod(w, r, http.MethodPost) {
			return
		}
		var input model.NewSale
		if !render.DecodeJSON(w, r, &input) {
			return
		}
		sale, err := st.RecordSale(input)
		if err != nil {
			render.StoreError(w, err, "売上の登録に失敗しました。")
			return
		}
		render.JSON(w, http.StatusCreated, sale)
	}
}
