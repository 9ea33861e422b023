package service

import (
	"regexp"
	"strconv"
	"strings"
)

// CorrectionAction is what a spoken bill correction asks for.
type CorrectionAction string

const (
	CorrectionUpdateQuantity CorrectionAction = "UPDATE_QUANTITY"
	CorrectionUpdateRate     CorrectionAction = "UPDATE_RATE"
	CorrectionRemove         CorrectionAction = "REMOVE"
)

// CorrectionCommand is a parsed spoken correction like
// "change cement quantity to 5" or "remove paint brush".
type CorrectionCommand struct {
	Action CorrectionAction
	Target string
	Value  float64
}

var (
	quantityCommandRe = regexp.MustCompile(`(?:change|set)\s+(.+?)\s+quantity\s+to\s+(\d+(?:\.\d+)?)`)
	rateCommandRe     = regexp.MustCompile(`(?:change|set)\s+(.+?)\s+rate\s+to\s+(\d+(?:\.\d+)?)`)
	removeCommandRe   = regexp.MustCompile(`(?:remove|delete)\s+(.+)`)
)

// ParseCorrectionCommand recognizes the supported spoken corrections.
// Returns false when the command matches none of them.
func ParseCorrectionCommand(command string) (*CorrectionCommand, bool) {
	command = strings.ToLower(strings.TrimSpace(command))

	if m := removeCommandRe.FindStringSubmatch(command); m != nil {
		return &CorrectionCommand{
			Action: CorrectionRemove,
			Target: strings.TrimSpace(m[1]),
		}, true
	}
	if m := rateCommandRe.FindStringSubmatch(command); m != nil {
		value, _ := strconv.ParseFloat(m[2], 64)
		return &CorrectionCommand{
			Action: CorrectionUpdateRate,
			Target: strings.TrimSpace(m[1]),
			Value:  value,
		}, true
	}
	if m := quantityCommandRe.FindStringSubmatch(command); m != nil {
		value, _ := strconv.ParseFloat(m[2], 64)
		return &CorrectionCommand{
			Action: CorrectionUpdateQuantity,
			Target: strings.TrimSpace(m[1]),
			Value:  value,
		}, true
	}
	return nil, false
}
