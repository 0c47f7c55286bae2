package commands

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vkarthik/canvault/internal/alerts"
	"github.com/vkarthik/canvault/internal/update"
)

func addTUI(topLevel *cobra.Command, configPath *string) {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "open the interactive assignment browser",
		Example: `
canvault tui
canvault tui --config ~/.config/canvault/config.yaml
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(*configPath)
		},
	}
	topLevel.AddCommand(cmd)
}

func runTUI(configPath string) error {
	deps, err := buildDeps(configPath)
	if err != nil {
		return err
	}
	defer deps.Close()

	rt := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	engine := alerts.NewEngine(64)
	engine.Start()
	defer engine.Stop()

	updateDeps := deps.updateDeps(rt)
	updateDeps.Alerts = engine
	model := update.NewModel(updateDeps)

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}
