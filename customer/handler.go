package customer

import (
	"net/http"
	"strings"

	"retail/aggregation"
	"retail/model"
	"retail/render"
	"retail/store"
)

func ListCustomersHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, st.SearchCustomers(r.URL.Query().Get("q")))
	}
}

func CreateCustomerHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !render.RequireMethod(w, r, http.MethodPost) {
			return
		}
		var input model.NewCustomer
		if !render.DecodeJSON(w, r, &input) {
			return
		}
		c, err := st.CreateCustomer(input)
		if err != nil {
			render.StoreError(w, err, "顧客の保存に失敗しました。")
			return
		}
		render.JSON(w, http.StatusCreated, c)
	}
}

func UpdateCustomerHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !render.RequireMethod(w, r, http.MethodPost) {
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/api/customers/update/")
		if id == "" {
			render.Error(w, "顧客IDが必要です。", http.StatusBadRequest)
			return
		}
		var patch model.CustomerPatch
		if !render.DecodeJSON(w, r, &patch) {
			return
		}
		c, err := st.UpdateCustomer(id, patch)
		if err != nil {
			render.StoreError(w, err, "顧客の更新に失敗しました。")
			return
		}
		render.JSON(w, http.StatusOK, c)
	}
}

// CustomerStatsHandler は売上から再計算した顧客の購入実績を返します。
func CustomerStatsHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/customers/stats/")
		if id == "" {
			render.Error(w, "顧客IDが必要です。", http.StatusBadRequest)
			return
		}
		if _, ok := st.Customer(id); !ok {
			render.Error(w, "顧客が見つかりません。", http.StatusNotFound)
			return
		}
		render.JSON(w, http.StatusOK, aggregation.CustomerSummary(st.Snapshot(), id))
	}
}
