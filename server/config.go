package server

import (
	"encoding/base64"
	"fmt"

	"github.com/cyclopcam/dbh"
)

type Config struct {
	DB       dbh.DBConfig   `json:"db"`
	Upstream UpstreamConfig `json:"upstream"`

	// SessionSealKey is 32 bytes, base64. It seals upstream bearer tokens at
	// rest in the session DB.
	SessionSealKey string `json:"sessionSealKey"`

	// Port to listen on, eg ":8080"
	Port string `json:"port"`
}

// UpstreamConfig points at the TalentHub REST API.
type UpstreamConfig struct {
	// BaseURL eg https://talenthub.newlinkmarketing.com/api (no trailing slash)
	BaseURL string `json:"baseUrl"`
}

func (c *Config) sealKey() ([32]byte, error) {
	key := [32]byte{}
	raw, err := base64.StdEncoding.DecodeString(c.SessionSealKey)
	if err != nil {
		return key, fmt.Errorf("sessionSealKey is not valid base64: %w", err)
	}
	if len(raw) != 32 {
		return key, fmt.Errorf("sessionSealKey must be 32 bytes (got %v)", len(raw))
	}
	copy(key[:], raw)
	return key, nil
}
