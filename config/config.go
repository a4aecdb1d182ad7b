package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabasePath     string `json:"databasePath"`
	Port             string `json:"port"`
	SeedProductsPath string `json:"seedProductsPath"`
	CSVEncoding      string `json:"csvEncoding"`
}

var (
	cfg Config
	mu  sync.RWMutex

	configFilePath = "./retail_config.json"
)

// envOverrides は環境変数名と上書き対象のフィールドです。
var envOverrides = map[string]func(*Config, string){
	"RETAIL_DB_PATH":       func(c *Config, v string) { c.DatabasePath = v },
	"RETAIL_PORT":          func(c *Config, v string) { c.Port = v },
	"RETAIL_SEED_PRODUCTS": func(c *Config, v string) { c.SeedProductsPath = v },
	"RETAIL_CSV_ENCODING":  func(c *Config, v string) { c.CSVEncoding = v },
}

// Defaults は設定ファイルが無いときの既定値です。
func Defaults() Config {
	return Config{
		DatabasePath: "./retail.db",
		Port:         ":8080",
		CSVEncoding:  "utf-8",
	}
}

func applyDefaults(c *Config) {
	d := Defaults()
	if c.DatabasePath == "" {
		c.DatabasePath = d.DatabasePath
	}
	if c.Port == "" {
		c.Port = d.Port
	}
	if c.CSVEncoding == "" {
		c.CSVEncoding = d.CSVEncoding
	}
}

// SetFilePath は設定ファイルの場所を変更します。
func SetFilePath(path string) {
	mu.Lock()
	defer mu.Unlock()
	configFilePath = path
}

// LoadEnv は .env ファイルを環境変数に読み込みます。既存の環境変数は上書きしません。
func LoadEnv(files ...string) error {
	return godotenv.Load(files...)
}

// LoadConfig は設定ファイルを読み込み、RETAIL_* 環境変数で上書きします。
// ファイルが無い場合はデフォルト値を使います。
// ファイルが読めない・壊れている場合もデフォルト値 (環境変数の上書き込み) を有効にし、
// その設定とエラーを返します。
func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	tempCfg, loadErr := readConfigFile(configFilePath)
	if loadErr != nil {
		tempCfg = Defaults()
	}

	for name, set := range envOverrides {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			set(&tempCfg, v)
		}
	}
	applyDefaults(&tempCfg)

	cfg = tempCfg
	return cfg, loadErr
}

func readConfigFile(path string) (Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults(), nil
		}
		return Config{}, err
	}
	var c Config
	if err := json.Unmarshal(file, &c); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return c, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	applyDefaults(&newCfg)

	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
