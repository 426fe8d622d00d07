// Package logger builds configured slog.Logger instances with consistent
// formats, levels, and attribute conventions across the project.
//
// New applies functional options over production-safe defaults (JSON at
// info level on stdout). Environment presets WithDevelopment and
// WithProduction set the usual format/level pairs and tag every record with
// the service name. Context extractors registered through
// WithContextExtractors are evaluated per log call, injecting request-scoped
// attributes such as request IDs.
//
// The attr helpers (Error, Component, Duration, TaskID, ...) keep attribute
// keys uniform so log queries do not have to chase key spelling variants.
package logger
