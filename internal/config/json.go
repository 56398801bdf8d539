package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		EncryptionKey        string   `json:"encryption_key"`
		TokenIssuer          string   `json:"token_issuer"`
		AccessTokenTTL       Duration `json:"access_token_ttl"`
		RefreshTokenTTL      Duration `json:"refresh_token_ttl"`
		PasswordValidityDays int      `json:"password_validity_days"`
		ResetTokenTTL        Duration `json:"reset_token_ttl"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Mail struct {
		SMTPAddress string `json:"smtp_address"`
		From        string `json:"from"`
		User        string `json:"user"`
		Password    string `json:"password"`
		ResetURL    string `json:"reset_url"`
	} `json:"mail,omitempty"`

	Workers struct {
		ExpirationCheckInterval Duration `json:"expiration_check_interval"`
		ExpirationNotifyDays    int      `json:"expiration_notify_days"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			EncryptionKey:        jsonCfg.App.EncryptionKey,
			TokenIssuer:          jsonCfg.App.TokenIssuer,
			AccessTokenTTL:       time.Duration(jsonCfg.App.AccessTokenTTL),
			RefreshTokenTTL:      time.Duration(jsonCfg.App.RefreshTokenTTL),
			PasswordValidityDays: jsonCfg.App.PasswordValidityDays,
			ResetTokenTTL:        time.Duration(jsonCfg.App.ResetTokenTTL),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Mail: Mail{
			SMTPAddress: jsonCfg.Mail.SMTPAddress,
			From:        jsonCfg.Mail.From,
			User:        jsonCfg.Mail.User,
			Password:    jsonCfg.Mail.Password,
			ResetURL:    jsonCfg.Mail.ResetURL,
		},
		Workers: Workers{
			ExpirationCheckInterval: time.Duration(jsonCfg.Workers.ExpirationCheckInterval),
			ExpirationNotifyDays:    jsonCfg.Workers.ExpirationNotifyDays,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as raw nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %v", v)
	}
}
