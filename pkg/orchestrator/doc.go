// Package orchestrator wires spec normalisation, validation and emitter
// dispatch behind a single entry point. Callers that need other emitters can
// inject their own render.Registry.
package orchestrator
