// Package filter derives the displayed product sequence from the
// accumulated collection and the user's filter configuration.
//
// Apply is a pure, deterministic pipeline with three stages: nutrient
// range filtering (absent values pass through), an optional stable sort
// by name, Nutri-Score grade, or energy, and finally the grade tab.
// Filtering never adds items, so Apply's output is always a subset of
// its input in a stable order.
//
// View adds derived-value caching on top: the presentation layer calls
// View.Apply on every render and the pipeline only reruns when the
// collection identity or the configuration version changed.
package filter
