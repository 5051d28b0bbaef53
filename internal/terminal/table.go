package terminal

import (
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/ogsmod/modtool/internal/api"
	"github.com/ogsmod/modtool/internal/moderation"
	"github.com/olekukonko/tablewriter"
)

const noteTruncateLen = 48

func defaultTable(writer io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(writer)
}

// RenderPowers writes the report type to required power table, marking which types powers can handle.
func RenderPowers(writer io.Writer, powers moderation.ModeratorPower) error {
	table := defaultTable(writer)
	table.Header("Report Type", "Required Power", "Can Handle")

	for _, reportType := range moderation.ReportTypes {
		if reportType == moderation.ReportAll {
			continue
		}

		canHandle := "no"
		if moderation.CanHandle(powers, reportType) {
			canHandle = "yes"
		}

		if err := table.Append([]string{
			reportType.String(),
			moderation.RequiredPower(reportType).String(),
			canHandle,
		}); err != nil {
			return err
		}
	}

	return table.Render()
}

// RenderMismatches writes the differences between the local and a remote power table.
func RenderMismatches(writer io.Writer, mismatches []moderation.PowerMismatch) error {
	table := defaultTable(writer)
	table.Header("Report Type", "Local", "Remote")

	for _, mismatch := range mismatches {
		local := mismatch.Local.String()
		if mismatch.MissingLocal {
			local = "-"
		}

		remote := mismatch.Remote.String()
		if mismatch.MissingRemote {
			remote = "-"
		}

		if err := table.Append([]string{mismatch.ReportType.String(), local, remote}); err != nil {
			return err
		}
	}

	return table.Render()
}

func RenderIncidents(writer io.Writer, incidents []api.Incident) error {
	table := defaultTable(writer)
	table.Header("ID", "Type", "Game", "Reporter", "Reported", "Note", "Created")

	for _, incident := range incidents {
		if err := table.Append([]string{
			strconv.FormatInt(incident.ID, 10),
			incident.Type.String(),
			formatID(incident.GameID),
			formatID(incident.ReporterID),
			formatID(incident.ReportedID),
			truncate(incident.Note, noteTruncateLen),
			humanize.Time(incident.Created),
		}); err != nil {
			return err
		}
	}

	return table.Render()
}

func formatID(id int64) string {
	if id <= 0 {
		return "-"
	}

	return strconv.FormatInt(id, 10)
}

func truncate(value string, maxLen int) string {
	runes := []rune(value)
	if len(runes) <= maxLen {
		return value
	}

	return string(runes[:maxLen-1]) + "…"
}
