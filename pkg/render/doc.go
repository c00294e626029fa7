// Package render defines the Emitter contract shared by every artifact
// generator, the kind-keyed Registry the orchestrator resolves emitters from,
// per-request Options, and the single set of escaping helpers used to embed
// user text into generated TypeScript and JSX.
package render
