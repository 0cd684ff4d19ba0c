// SPDX-License-Identifier: MIT

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRunID  = "run_id"
	FieldSource = "source"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"

	// Catalog fields
	FieldItems      = "items"
	FieldCategories = "categories"
	FieldBatch      = "batch"

	// Transfer fields
	FieldBytes    = "bytes"
	FieldDuration = "duration"

	// State fields
	FieldOldState = "old_state"
	FieldNewState = "new_state"

	// Cache fields
	FieldCacheKey   = "cache_key"
	FieldCacheStore = "cache_store"
)
