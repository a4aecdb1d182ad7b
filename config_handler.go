package main

import (
	"errors"
	"log"
	"net/http"
	"os"

	"retail/config"
	"retail/render"

	"golang.org/x/text/encoding/htmlindex"
)

// GetConfigHandler は現在の設定を返します
func GetConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, config.GetConfig())
	}
}

// SaveConfigHandler は設定を保存します
func SaveConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var newCfg config.Config
		if !render.DecodeJSON(w, r, &newCfg) {
			return
		}

		if err := validateFilePath(newCfg.SeedProductsPath); err != nil {
			render.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := validateCharset(newCfg.CSVEncoding); err != nil {
			render.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := config.SaveConfig(newCfg); err != nil {
			log.Printf("Error saving config: %v", err)
			render.Error(w, "設定の保存に失敗しました。", http.StatusInternalServerError)
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{"message": "設定を保存しました。"})
	}
}

// validateFilePath は空でないパスが既存のファイルを指すか確認します。
func validateFilePath(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New("指定されたファイルが見つかりません: " + path)
		}
		log.Printf("Error checking file path: %v", err)
		return errors.New("ファイルパスの確認中にエラーが発生しました。")
	}
	if info.IsDir() {
		return errors.New("指定されたパスはファイルではありません: " + path)
	}
	return nil
}

func validateCharset(name string) error {
	if name == "" {
		return nil
	}
	if _, err := htmlindex.Get(name); err != nil {
		return errors.New("不明な文字コードです: " + name)
	}
	return nil
}
