package controller

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "gext.dev/pkg/gext/internal/model"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	uuidStyle = lipgloss.NewStyle().Bold(true)
)

// PlainUI implements UI using the cobra Command's output streams. A mutex
// keeps output from concurrent bundle pipelines from interleaving.
type PlainUI struct {
	cmd *cobra.Command
	mu  sync.Mutex
}

// NewPlainUI creates a PlainUI.
func NewPlainUI(cmd *cobra.Command) *PlainUI {
	return &PlainUI{cmd: cmd}
}

// DisplayPlan renders the resolved file set as a table.
func (u *PlainUI) DisplayPlan(plan *m.InstallPlan) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.cmd.Printf("%s -> %s\n", uuidStyle.Render(plan.UUID), plan.Dest)
	u.cmd.Print(renderPlanTable(plan))
}

// DisplayInstalled reports a completed install.
func (u *PlainUI) DisplayInstalled(plan *m.InstallPlan) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.cmd.Printf("%s installed %s (%d files, %d schemas)\n",
		okStyle.Render("ok"), uuidStyle.Render(plan.UUID), len(plan.Files), len(plan.Schemas))
}

// DisplayRemoved reports a completed uninstall.
func (u *PlainUI) DisplayRemoved(uuid string, dest m.Path) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.cmd.Printf("%s removed %s from %s\n", okStyle.Render("ok"), uuidStyle.Render(uuid), dest)
}

func renderPlanTable(plan *m.InstallPlan) string {
	var buffer bytes.Buffer

	table := tablewriter.NewWriter(&buffer)
	table.SetHeader([]string{"Path", "Provenance"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, f := range plan.Files {
		table.Append([]string{string(f.Path), f.Provenance.String()})
	}

	for _, schema := range plan.Schemas {
		table.Append([]string{fmt.Sprintf("%s/%s", m.SchemaDir, schema), "schema"})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(plan.Files)+len(plan.Schemas)),
		"",
	})

	table.Render()

	return buffer.String()
}
