// Package skillet extracts structured recipe data from arbitrary recipe
// websites and PDF documents without per-site configuration. It classifies
// input URLs, discovers candidate recipe pages, scrapes them through a
// fast/slow fallback chain, and structures the result with LLM assistance.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, gemini/, goquery/) or their
// function (e.g., classify/, pipeline/, pdf/).
package skillet
