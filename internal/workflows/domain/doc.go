// Package domain defines the workflow records the SkillForge API serves.
//
// It holds only pure Go types and logic:
//   - Workflow is one server-side record, replaced wholesale on every refresh
//   - Priority and Status are value objects with display defaults for
//     missing or unexpected server values
//   - Result and TokenUsage carry the optional AI output attached to a record
//   - Reconcile deduplicates and orders a record sequence for display
//
// Nothing here performs I/O. The HTTP adapter lives in internal/api and the
// cache that owns these records lives in internal/workflows.
//
// # Import Aliasing
//
// The application package for workflows is also small and commonly imported
// next to this one:
//
//	import (
//	    wfdomain "github.com/zjrosen/skillforge/internal/workflows/domain"
//	    wfapp "github.com/zjrosen/skillforge/internal/workflows/application"
//	)
package domain
