// Package controller provides output adapters for displaying install
// results.
package controller

import (
	m "gext.dev/pkg/gext/internal/model"
)

// UI defines the interface for reporting what gext resolved and did.
// Implementations can use different output methods; workflows may call
// them from concurrent bundle pipelines.
type UI interface {
	// DisplayPlan renders the resolved file set of one bundle.
	DisplayPlan(plan *m.InstallPlan)

	// DisplayInstalled reports a completed install.
	DisplayInstalled(plan *m.InstallPlan)

	// DisplayRemoved reports a completed uninstall.
	DisplayRemoved(uuid string, dest m.Path)
}
