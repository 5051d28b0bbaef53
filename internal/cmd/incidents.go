package cmd

import (
	"github.com/ogsmod/modtool/internal/api"
	"github.com/ogsmod/modtool/internal/moderation"
	"github.com/ogsmod/modtool/internal/terminal"
	"github.com/spf13/cobra"
)

func incidentsCmd() *cobra.Command {
	var (
		reportType string
		page       int
		pageSize   int
		mine       bool
	)

	command := &cobra.Command{
		Use:   "incidents",
		Short: "List incident reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			filterType, errType := moderation.ParseReportType(reportType)
			if errType != nil {
				return errType
			}

			app, errApp := NewApp(ctx)
			if errApp != nil {
				return errApp
			}

			defer app.Close()

			client, errClient := app.Client()
			if errClient != nil {
				return errClient
			}

			incidents, errIncidents := client.Incidents(ctx, api.IncidentQuery{
				Type:     filterType,
				Page:     page,
				PageSize: pageSize,
			})
			if errIncidents != nil {
				terminal.NewErrorAlerter(cmd.ErrOrStderr()).Alert(errIncidents)

				return ErrNoAction
			}

			if mine {
				incidents = handleable(incidents, app.conf.Moderator.Powers)
			}

			return terminal.RenderIncidents(cmd.OutOrStdout(), incidents)
		},
	}

	command.Flags().StringVarP(&reportType, "type", "t", string(moderation.ReportAll), "report type to list")
	command.Flags().IntVarP(&page, "page", "p", 1, "page number")
	command.Flags().IntVar(&pageSize, "page-size", 25, "incidents per page")
	command.Flags().BoolVar(&mine, "mine", false, "only show incidents the configured powers can handle")

	return command
}

func handleable(incidents []api.Incident, powers moderation.ModeratorPower) []api.Incident {
	filtered := make([]api.Incident, 0, len(incidents))

	for _, incident := range incidents {
		if moderation.CanHandle(powers, incident.Type) {
			filtered = append(filtered, incident)
		}
	}

	return filtered
}
