// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// minEncryptionKeyLen is the shortest passphrase that can back an AES key
// (AES-128 needs 16 key bytes).
const minEncryptionKeyLen = 16

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// A broken cipher or a missing database are fatal misconfigurations: the
// process must refuse to start rather than degrade.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if len(cfg.App.EncryptionKey) < minEncryptionKeyLen {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}
