// Package validate contains the pure field validation that gates every write.
// Check order is a contract: when multiple violations coexist, the first one
// in declaration order is the one reported. Services run these before calling
// a repo; the repo layer never re-validates.
package validate

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jsteiner/chargelog/internal/domain"
)

// Field limits shared by both entities.
const (
	MaxTextLen = 255
	MaxAmount  = 999999
)

// User-facing validation messages. Tests and UI code reference these
// constants instead of repeating the strings.
const (
	MsgNameRequired            = "Name cannot be empty"
	MsgNameTooLong             = "Name cannot exceed 255 characters"
	MsgInitialCostsNegative    = "Initial costs cannot be negative"
	MsgInitialCostsTooLarge    = "Initial costs cannot exceed 999999"
	MsgDateInFuture            = "Date cannot be in the future"
	MsgStationProviderRequired = "Station provider cannot be empty"
	MsgStationProviderTooLong  = "Station provider cannot exceed 255 characters"
	MsgLocationRequired        = "Location cannot be empty"
	MsgLocationTooLong         = "Location cannot exceed 255 characters"
	MsgEnergyChargedPositive   = "Energy charged must be positive"
	MsgEnergyChargedTooLarge   = "Energy charged cannot exceed 999999"
	MsgTotalCostNegative       = "Total cost cannot be negative"
	MsgTotalCostTooLarge       = "Total cost cannot exceed 999999"
)

// TravelEvent validates the user-editable fields of a travel event.
// Returns nil when every check passes, otherwise an error wrapping
// domain.ErrValidation with the first failing check's message.
func TravelEvent(name string, initialCosts float64) error {
	switch {
	case strings.TrimSpace(name) == "":
		return failure(MsgNameRequired)
	case utf8.RuneCountInString(name) > MaxTextLen:
		return failure(MsgNameTooLong)
	case initialCosts < 0:
		return failure(MsgInitialCostsNegative)
	case initialCosts > MaxAmount:
		return failure(MsgInitialCostsTooLarge)
	}
	return nil
}

// ChargingSession validates the user-editable fields of a charging session.
// The future-date check compares against the wall clock at call time; it is
// a submission-time rule, not a store constraint.
func ChargingSession(date time.Time, stationProvider, location string, energyCharged, totalCost float64) error {
	switch {
	case date.After(time.Now()):
		return failure(MsgDateInFuture)
	case strings.TrimSpace(stationProvider) == "":
		return failure(MsgStationProviderRequired)
	case utf8.RuneCountInString(stationProvider) > MaxTextLen:
		return failure(MsgStationProviderTooLong)
	case strings.TrimSpace(location) == "":
		return failure(MsgLocationRequired)
	case utf8.RuneCountInString(location) > MaxTextLen:
		return failure(MsgLocationTooLong)
	case energyCharged <= 0:
		return failure(MsgEnergyChargedPositive)
	case energyCharged > MaxAmount:
		return failure(MsgEnergyChargedTooLarge)
	case totalCost < 0:
		return failure(MsgTotalCostNegative)
	case totalCost > MaxAmount:
		return failure(MsgTotalCostTooLarge)
	}
	return nil
}

func failure(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
}
