// File: internal/services/ai/errors.go
package ai

import "errors"

// ErrNoAPIKey means no credential has been configured yet, neither from the
// environment nor through the set-key endpoint. Handlers surface it as a
// client error rather than an upstream failure.
var ErrNoAPIKey = errors.New("assistant API key not configured")
