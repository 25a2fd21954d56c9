// Package domain contains the core business types for the submission
// workflow: the submission lifecycle, feedback entries under review,
// theme/seed rows and clustering outcomes.
//
// Domain types are plain structs with no behaviour beyond small helpers.
// All orchestration lives in the services package.
package domain
