// Package auth provides optional static API-key protection for the HTTP
// surface. The desktop front end talks to the pipeline in-process and never
// passes through here.
package auth

import (
	"context"
	"strings"
)

type APIKeyValidator interface {
	Validate(ctx context.Context, apiKey string) bool
}

type StaticAPIKeyValidator struct {
	keys map[string]struct{}
}

// NewStaticAPIKeyValidator parses a comma-separated key list. An empty spec
// yields a validator that rejects everything.
func NewStaticAPIKeyValidator(spec string) *StaticAPIKeyValidator {
	validator := &StaticAPIKeyValidator{keys: map[string]struct{}{}}
	for _, entry := range strings.Split(spec, ",") {
		key := strings.TrimSpace(entry)
		if key == "" {
			continue
		}
		validator.keys[key] = struct{}{}
	}
	return validator
}

func (v *StaticAPIKeyValidator) Validate(_ context.Context, apiKey string) bool {
	_, ok := v.keys[apiKey]
	return ok
}
