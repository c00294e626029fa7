// Package openapi exposes the loader and parser contracts used to import
// request bodies from OpenAPI documents, plus the mapping from request
// properties to zodform field specs. Implementations live under
// internal/openapi so kin-openapi types never leak to callers.
package openapi
