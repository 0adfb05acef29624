package config

import "strings"

// GroupStrategy selects which level of the observation → date → capture
// hierarchy opens a new directory and restarts naming.
type GroupStrategy string

const (
	GroupByObservation GroupStrategy = "observation"
	GroupByDate        GroupStrategy = "date"
	GroupByCapture     GroupStrategy = "capture"
)

// GroupStrategies lists the accepted grouping strategy names.
var GroupStrategies = []GroupStrategy{GroupByObservation, GroupByDate, GroupByCapture}

func (g GroupStrategy) valid() bool {
	for _, candidate := range GroupStrategies {
		if g == candidate {
			return true
		}
	}
	return false
}

// NamingStrategy selects how accepted raw files are renamed.
type NamingStrategy string

const (
	NameByOriginal NamingStrategy = "original"
	NameByNew      NamingStrategy = "new"
	NameByTicks    NamingStrategy = "ticks"
	NameByTicksHex NamingStrategy = "tickshex"
)

// NamingStrategies lists the accepted naming strategy names.
var NamingStrategies = []NamingStrategy{NameByOriginal, NameByNew, NameByTicks, NameByTicksHex}

func (n NamingStrategy) valid() bool {
	for _, candidate := range NamingStrategies {
		if n == candidate {
			return true
		}
	}
	return false
}

func canonicalToken(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(value)
}

func joinNames[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
