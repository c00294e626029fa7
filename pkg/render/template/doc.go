// Package template defines the renderer-agnostic template seam used by the
// emitters. Skeleton templates hold the fixed TypeScript/TSX structure of an
// artifact; emitters pre-render the repeated sections and splice them in.
package template
