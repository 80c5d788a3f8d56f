// Package driving provides interfaces exposed by the core to external actors (primary/inbound ports).
package driving
