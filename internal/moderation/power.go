package moderation

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ogsmod/modtool/internal/translate"
)

// ModeratorPower is a bit set of the report categories a community moderator may act on.
//
// Must match the MODERATOR_POWER definition on the server. Nothing checks this at runtime, see PowerMismatches.
type ModeratorPower uint8

const (
	PowerNone             ModeratorPower = 0
	PowerHandleScoreCheat ModeratorPower = 0b001
	PowerHandleEscaping   ModeratorPower = 0b010
	PowerHandleStalling   ModeratorPower = 0b100

	powerAll = PowerHandleScoreCheat | PowerHandleEscaping | PowerHandleStalling
)

var ErrUnknownPower = errors.New("unknown moderator power")

// Powers lists the individual power bits in ascending order.
var Powers = []ModeratorPower{PowerHandleScoreCheat, PowerHandleEscaping, PowerHandleStalling} //nolint:gochecknoglobals

// powerNeeded maps every report type to the power required to handle it. PowerNone means there is no
// community moderator power that allows handling the type.
var powerNeeded = map[ReportType]ModeratorPower{ //nolint:gochecknoglobals
	ReportAll:                  PowerNone,
	ReportStalling:             PowerHandleStalling,
	ReportInappropriateContent: PowerNone,
	ReportScoreCheating:        PowerHandleScoreCheat,
	ReportHarassment:           PowerNone,
	ReportAIUse:                PowerNone,
	ReportSandbagging:          PowerNone,
	ReportEscaping:             PowerHandleEscaping,
	ReportAppeal:               PowerNone,
	ReportOther:                PowerNone,
	ReportWarning:              PowerNone,
	ReportTroll:                PowerNone,
}

// RequiredPower returns the power needed to handle reportType. Unknown types require PowerNone.
func RequiredPower(reportType ReportType) ModeratorPower {
	return powerNeeded[reportType]
}

// PowerName returns the translated display label of a single power.
func PowerName(power ModeratorPower) string {
	switch power {
	case PowerNone:
		return translate.P("... as in 'moderators powers: None'", "None")
	case PowerHandleScoreCheat:
		return translate.P("A label for a moderator power", "Handle Score Cheating Reports")
	case PowerHandleEscaping:
		return translate.P("A label for a moderator power", "Handle Escaping Reports")
	case PowerHandleStalling:
		return translate.P("A label for a moderator power", "Handle Stalling Reports")
	default:
		return "unknown"
	}
}

// ParsePower resolves a power by the report type it unlocks, e.g. "stalling". "none" is PowerNone.
func ParsePower(name string) (ModeratorPower, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "none" {
		return PowerNone, nil
	}

	if power := RequiredPower(ReportType(name)); power != PowerNone {
		return power, nil
	}

	return PowerNone, fmt.Errorf("%w: %q", ErrUnknownPower, name)
}

// ParsePowers combines the named powers into a single set.
func ParsePowers(names []string) (ModeratorPower, error) {
	var powers ModeratorPower

	for _, name := range names {
		power, err := ParsePower(name)
		if err != nil {
			return PowerNone, err
		}

		powers |= power
	}

	return powers, nil
}

// Valid is false when bits outside the known powers are set.
func (p ModeratorPower) Valid() bool {
	return p&^powerAll == 0
}

// Has reports whether every bit of other is set. Has(PowerNone) is always true.
func (p ModeratorPower) Has(other ModeratorPower) bool {
	return p&other == other
}

// Split returns the individual powers contained in p.
func (p ModeratorPower) Split() []ModeratorPower {
	var powers []ModeratorPower

	for _, power := range Powers {
		if p.Has(power) {
			powers = append(powers, power)
		}
	}

	return powers
}

func (p ModeratorPower) String() string {
	powers := p.Split()
	if len(powers) == 0 {
		return PowerName(PowerNone)
	}

	names := make([]string, len(powers))
	for i, power := range powers {
		names[i] = PowerName(power)
	}

	return strings.Join(names, ", ")
}

// CanHandle reports whether a community moderator holding powers is allowed to act on reportType.
// Types requiring PowerNone are reserved for full moderators.
func CanHandle(powers ModeratorPower, reportType ReportType) bool {
	needed := RequiredPower(reportType)
	if needed == PowerNone {
		return false
	}

	return powers.Has(needed)
}

// PowerMismatch describes a single disagreement between the local power table and one exported by the server.
type PowerMismatch struct {
	ReportType ReportType
	Local      ModeratorPower
	Remote     ModeratorPower
	// Missing is set when the type is absent on one side. Local or Remote is then PowerNone.
	MissingLocal  bool
	MissingRemote bool
}

// PowerMismatches compares a server exported report type -> power bits table with the local one. The result
// is sorted by report type and empty when both tables agree.
func PowerMismatches(remote map[string]uint8) []PowerMismatch {
	var mismatches []PowerMismatch

	for reportType, local := range powerNeeded {
		remotePower, found := remote[string(reportType)]
		switch {
		case !found:
			mismatches = append(mismatches, PowerMismatch{ReportType: reportType, Local: local, MissingRemote: true})
		case ModeratorPower(remotePower) != local:
			mismatches = append(mismatches, PowerMismatch{ReportType: reportType, Local: local, Remote: ModeratorPower(remotePower)})
		}
	}

	for name, remotePower := range remote {
		if _, found := powerNeeded[ReportType(name)]; !found {
			mismatches = append(mismatches, PowerMismatch{
				ReportType:   ReportType(name),
				Remote:       ModeratorPower(remotePower),
				MissingLocal: true,
			})
		}
	}

	slices.SortFunc(mismatches, func(a, b PowerMismatch) int {
		return strings.Compare(string(a.ReportType), string(b.ReportType))
	})

	return mismatches
}
