package models

// SystemConfig is a named configuration value persisted in the general
// key/value config table. Values flagged Encrypted hold
// base64(nonce ∥ ciphertext) produced by the crypto package and must be
// decrypted before use.
//
// One row exists per ConfigKey (uniqueness invariant); saves are idempotent
// upserts keyed on the name.
type SystemConfig struct {
	ID          int64  `json:"-"`
	ConfigKey   string `json:"config_key"`
	ConfigValue string `json:"config_value"`
	Encrypted   bool   `json:"encrypted"`
}

// TableName returns the name of the database table
// associated with the SystemConfig model.
func (c SystemConfig) TableName() string {
	return "system_config"
}

// ConfigKeyJWTSecret names the row holding the token-signing secret.
// Ensured at startup: when the row is absent a fresh secret is generated
// and stored encrypted before any token is issued.
const ConfigKeyJWTSecret = "app.jwt.secret"
