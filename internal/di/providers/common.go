// Package providers contains dependency injection providers for the Estante server.
package providers

import "time"

// shutdownTimeout is the maximum time allowed for graceful shutdown of a component.
const shutdownTimeout = 10 * time.Second
