// Package project persists clips and their keyframe tracks in SQLite and
// exchanges them as YAML scenario documents. The store mirrors the in-memory
// track API so a clip's timeline can be loaded, edited, and saved whole.
package project
