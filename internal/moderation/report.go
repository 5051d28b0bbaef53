// Package moderation holds the moderator facing definitions shared with the game server: the report
// categories, the community moderator powers needed to act on them, and the game annulment workflow.
package moderation

import (
	"errors"
	"fmt"
)

var ErrUnknownReportType = errors.New("unknown report type")

// ReportType classifies an incident report. Values must match the incident report model on the server.
type ReportType string

const (
	// ReportAll is not a real type, it only exists to request every type when enumerating or filtering.
	ReportAll                  ReportType = "all"
	ReportStalling             ReportType = "stalling"
	ReportInappropriateContent ReportType = "inappropriate_content"
	ReportScoreCheating        ReportType = "score_cheating"
	ReportHarassment           ReportType = "harassment"
	ReportAIUse                ReportType = "ai_use"
	ReportSandbagging          ReportType = "sandbagging"
	ReportEscaping             ReportType = "escaping"
	ReportAppeal               ReportType = "appeal"
	ReportOther                ReportType = "other"
	// ReportWarning is only created by moderators.
	ReportWarning ReportType = "warning"
	// ReportTroll is system generated and only visible to moderators.
	ReportTroll ReportType = "troll"
)

// ReportTypes lists every report type in display order, starting with ReportAll.
var ReportTypes = []ReportType{ //nolint:gochecknoglobals
	ReportAll,
	ReportStalling,
	ReportInappropriateContent,
	ReportScoreCheating,
	ReportHarassment,
	ReportAIUse,
	ReportSandbagging,
	ReportEscaping,
	ReportAppeal,
	ReportOther,
	ReportWarning,
	ReportTroll,
}

func (r ReportType) String() string {
	return string(r)
}

// ModeratorOnly reports whether regular users are unable to file this type.
func (r ReportType) ModeratorOnly() bool {
	return r == ReportWarning || r == ReportTroll
}

func ParseReportType(value string) (ReportType, error) {
	for _, reportType := range ReportTypes {
		if string(reportType) == value {
			return reportType, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownReportType, value)
}
