package api

import (
	"errors"
	"os"
	"strings"
)

type AuthTokenSource string

const (
	AuthTokenSourceNone     AuthTokenSource = ""
	AuthTokenSourceExplicit AuthTokenSource = "explicit"
	AuthTokenSourceEnv      AuthTokenSource = "env:SYNAPTIK_API_TOKEN"
	AuthTokenSourceEnvShort AuthTokenSource = "env:SYNAPTIK_TOKEN"
)

// ResolveAuthToken resolves the bearer token for the task service.
//
// Precedence:
//  1. provided (if non-empty)
//  2. SYNAPTIK_API_TOKEN env var
//  3. SYNAPTIK_TOKEN env var
//
// An empty token is valid: a local task service usually runs without auth.
// It never prints the token.
func ResolveAuthToken(provided string) (token string, source AuthTokenSource, err error) {
	candidates := []struct {
		value  string
		source AuthTokenSource
	}{
		{provided, AuthTokenSourceExplicit},
		{os.Getenv("SYNAPTIK_API_TOKEN"), AuthTokenSourceEnv},
		{os.Getenv("SYNAPTIK_TOKEN"), AuthTokenSourceEnvShort},
	}
	for _, c := range candidates {
		tok := strings.TrimSpace(c.value)
		if tok == "" {
			continue
		}
		// Basic sanity: tokens must not contain whitespace.
		if strings.ContainsAny(tok, " \t\n\r") {
			return "", AuthTokenSourceNone, errors.New("invalid token from " + string(c.source) + ": contains whitespace")
		}
		return tok, c.source, nil
	}
	return "", AuthTokenSourceNone, nil
}
