//go:build tools

package tools

// Pins the swagger generator used to build docs/swagger/swagger.json from
// the handler annotations.
import (
	_ "github.com/swaggo/swag/cmd/swag"
)
