package expense

import (
	"net/http"

	"retail/model"
	"retail/render"
	"retail/store"
)

func ListExpensesHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, st.Expenses())
	}
}

func CreateExpenseHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !render.RequireMethod(w, r, http.MethodPost) {
			return
		}
		var input model.NewExpense
		if !render.DecodeJSON(w, r, &input) {
			return
		}
		e, err := st.AddExpense(input)
		if err != nil {
			render.StoreError(w, err, "経費の保存に失敗しました。")
			return
		}
		render.JSON(w, http.StatusCreated, e)
	}
}
