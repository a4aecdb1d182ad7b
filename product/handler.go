package product

import (
	"net/http"
	"strings"

	"retail/config"
	"retail/model"
	"retail/parsers"
	"retail/render"
	"retail/store"
)

// ListProductsHandler は商品一覧を返します (?q=名前, ?category=分類)。
func ListProductsHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		category := model.ProductCategory(q.Get("category"))
		if category != "" && !category.Valid() {
			render.Error(w, "不明な分類です: "+string(category), http.StatusBadRequest)
			return
		}
		render.JSON(w, http.StatusOK, st.SearchProducts(q.Get("q"), category))
	}
}

func CreateProductHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !render.RequireMethod(w, r, http.MethodPost) {
			return
		}
		var input model.NewProduct
		if !render.DecodeJSON(w, r, &input) {
			return
		}
		p, err := st.CreateProduct(input)
		if err != nil {
			render.StoreError(w, err, "商品の保存に失敗しました。")
			return
		}
		render.JSON(w, http.StatusCreated, p)
	}
}

// UpdateProductHandler は /api/products/update/{id} の部分更新です。
func UpdateProductHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !render.RequireMethod(w, r, http.MethodPost) {
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/api/products/update/")
		if id == "" {
			render.Error(w, "商品IDが必要です。", http.StatusBadRequest)
			return
		}
		var patch model.ProductPatch
		if !render.DecodeJSON(w, r, &patch) {
			return
		}
		p, err := st.UpdateProduct(id, patch)
		if err != nil {
			render.StoreError(w, err, "商品の更新に失敗しました。")
			return
		}
		render.JSON(w, http.StatusOK, p)
	}
}

func DeleteProductHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !render.RequireMethod(w, r, http.MethodPost) {
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/api/products/delete/")
		if id == "" {
			render.Error(w, "商品IDが必要です。", http.StatusBadRequest)
			return
		}
		if err := st.DeleteProduct(id); err != nil {
			render.StoreError(w, err, "商品の削除に失敗しました。")
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{"message": "商品を削除しました。"})
	}
}

// ImportProductsHandler は商品CSV (multipart の file) を取り込みます。
func ImportProductsHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !render.RequireMethod(w, r, http.MethodPost) {
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			render.Error(w, "CSVファイルの読み込みに失敗しました: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()

		charset := r.FormValue("encoding")
		if charset == "" {
			charset = config.GetConfig().CSVEncoding
		}
		records, err := parsers.ParseProductCSV(file, charset)
		if err != nil {
			render.Error(w, "CSVファイルの解析に失敗しました: "+err.Error(), http.StatusBadRequest)
			return
		}
		if len(records) == 0 {
			render.Error(w, "CSVに商品がありません。", http.StatusBadRequest)
			return
		}

		created, err := st.ImportProducts(records)
		if err != nil {
			render.StoreError(w, err, "商品の取込に失敗しました。")
			return
		}
		render.JSON(w, http.StatusOK, map[string]any{
			"imported": len(created),
			"products": created,
		})
	}
}
