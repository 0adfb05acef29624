package config

import (
	"fmt"
	"strings"
)

// IgnorePolicy is the set of independent ignore capabilities applied by the
// acceptance filter. The zero value ignores nothing.
type IgnorePolicy struct {
	// TreatRejectedAsAccepted skips rejection correlation entirely.
	TreatRejectedAsAccepted bool
	// DropRejected invalidates raw files without a processed counterpart.
	DropRejected bool
	// DropJpeg invalidates processed jpg/jpeg files.
	DropJpeg bool
	// DropTiff invalidates processed tif/tiff files.
	DropTiff bool
	// KeepOnlyLastProcessed keeps only the last processed file of each family.
	KeepOnlyLastProcessed bool
}

const (
	ignoreNothing    = "nothing"
	ignoreRejection  = "rejection"
	ignoreRejected   = "rejected"
	ignoreJpeg       = "jpeg"
	ignoreTiff       = "tiff"
	ignoreAllButLast = "allbutlast"
)

// IgnoreTokens lists the accepted ignore token names.
var IgnoreTokens = []string{ignoreNothing, ignoreRejection, ignoreRejected, ignoreJpeg, ignoreTiff, ignoreAllButLast}

// ParseIgnorePolicy builds a policy from tokens. Each token may itself hold a
// comma separated list. "nothing" cannot be combined with other tokens, and
// "rejection" cannot be combined with "rejected".
func ParseIgnorePolicy(tokens []string) (IgnorePolicy, error) {
	var policy IgnorePolicy
	sawNothing := false
	count := 0
	for _, raw := range tokens {
		for _, part := range strings.Split(raw, ",") {
			token := canonicalToken(part)
			if token == "" {
				continue
			}
			count++
			switch token {
			case ignoreNothing:
				sawNothing = true
			case ignoreRejection:
				policy.TreatRejectedAsAccepted = true
			case ignoreRejected:
				policy.DropRejected = true
			case ignoreJpeg, "jpg":
				policy.DropJpeg = true
			case ignoreTiff, "tif":
				policy.DropTiff = true
			case ignoreAllButLast:
				policy.KeepOnlyLastProcessed = true
			default:
				return IgnorePolicy{}, configError("organize.ignore", fmt.Sprintf("unknown value %q (expected one of %s)", strings.TrimSpace(part), strings.Join(IgnoreTokens, ", ")))
			}
		}
	}
	if sawNothing && count > 1 {
		return IgnorePolicy{}, configError("organize.ignore", "\"nothing\" cannot be combined with other values")
	}
	if policy.TreatRejectedAsAccepted && policy.DropRejected {
		return IgnorePolicy{}, configError("organize.ignore", "\"rejection\" treats rejected files as accepted, so \"rejected\" would never apply")
	}
	return policy, nil
}

// Tokens returns the canonical token list for the policy.
func (p IgnorePolicy) Tokens() []string {
	var tokens []string
	if p.TreatRejectedAsAccepted {
		tokens = append(tokens, ignoreRejection)
	}
	if p.DropRejected {
		tokens = append(tokens, ignoreRejected)
	}
	if p.DropJpeg {
		tokens = append(tokens, ignoreJpeg)
	}
	if p.DropTiff {
		tokens = append(tokens, ignoreTiff)
	}
	if p.KeepOnlyLastProcessed {
		tokens = append(tokens, ignoreAllButLast)
	}
	return tokens
}

func (p IgnorePolicy) String() string {
	tokens := p.Tokens()
	if len(tokens) == 0 {
		return ignoreNothing
	}
	return strings.Join(tokens, ", ")
}
