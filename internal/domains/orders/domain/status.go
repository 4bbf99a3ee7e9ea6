package domain

import (
	"errors"
	"strings"
	"time"
)

// StatusCode identifies a step in the fulfillment timeline.
type StatusCode string

const (
	StatusPlaced         StatusCode = "placed"
	StatusConfirmed      StatusCode = "confirmed"
	StatusReadyForPickup StatusCode = "ready_for_pickup"
)

var (
	ErrStatusRequired = errors.New("status code required")
	ErrUnknownStatus  = errors.New("invalid status code")
)

// StatusDefinition names one step of the fixed status sequence.
type StatusDefinition struct {
	Code  StatusCode
	Label string
}

var statusSequence = []StatusDefinition{
	{Code: StatusPlaced, Label: "Order placed"},
	{Code: StatusConfirmed, Label: "Confirmed"},
	{Code: StatusReadyForPickup, Label: "Ready for pickup"},
}

// StatusCatalog returns the ordered status sequence.
func StatusCatalog() []StatusDefinition {
	return append([]StatusDefinition(nil), statusSequence...)
}

// StatusCodes lists the accepted codes in sequence order.
func StatusCodes() []string {
	codes := make([]string, 0, len(statusSequence))
	for _, def := range statusSequence {
		codes = append(codes, string(def.Code))
	}
	return codes
}

// ParseStatus trims raw and resolves it against the sequence.
func ParseStatus(raw string) (StatusCode, error) {
	code := StatusCode(strings.TrimSpace(raw))
	if code == "" {
		return "", ErrStatusRequired
	}
	if statusIndex(code) < 0 {
		return "", ErrUnknownStatus
	}
	return code, nil
}

func statusIndex(code StatusCode) int {
	for i, def := range statusSequence {
		if def.Code == code {
			return i
		}
	}
	return -1
}

// StatusStep is one entry of an order's timeline. Timestamp is nil until reached.
type StatusStep struct {
	Code      StatusCode
	Label     string
	Timestamp *time.Time
}

// NewStatusFlow builds the initial timeline with only the first step stamped.
func NewStatusFlow(placedAt time.Time) []StatusStep {
	flow := make([]StatusStep, len(statusSequence))
	for i, def := range statusSequence {
		flow[i] = StatusStep{Code: def.Code, Label: def.Label}
	}
	stamp := placedAt
	flow[0].Timestamp = &stamp
	return flow
}

// rebuildFlow stamps target at now, clears later steps and keeps earlier
// timestamps as they were. Skipped steps are not backfilled.
func rebuildFlow(existing []StatusStep, target int, now time.Time) []StatusStep {
	previous := make(map[StatusCode]*time.Time, len(existing))
	for _, step := range existing {
		previous[step.Code] = step.Timestamp
	}
	flow := make([]StatusStep, len(statusSequence))
	for i, def := range statusSequence {
		step := StatusStep{Code: def.Code, Label: def.Label}
		switch {
		case i == target:
			stamp := now
			step.Timestamp = &stamp
		case i < target:
			if ts := previous[def.Code]; ts != nil {
				stamp := *ts
				step.Timestamp = &stamp
			}
		}
		flow[i] = step
	}
	return flow
}
