package planner

import (
	"fmt"
	"strconv"
	"time"

	"astrocopy/internal/config"
)

// ticksAtUnixEpoch is the number of 100ns ticks between 0001-01-01 and
// 1970-01-01, the epoch used by tick based stems.
const ticksAtUnixEpoch int64 = 621355968000000000

// Ticks converts t to 100ns intervals since 0001-01-01 UTC.
func Ticks(t time.Time) int64 {
	return t.Unix()*10_000_000 + int64(t.Nanosecond()/100) + ticksAtUnixEpoch
}

// stemSource produces the stem used for accepted raw files. ok is false when
// files keep their original names.
type stemSource func() (stem string, ok bool)

func newStemSource(strategy config.NamingStrategy, newFilename string, now func() time.Time) (stemSource, error) {
	switch strategy {
	case config.NameByOriginal:
		return func() (string, bool) { return "", false }, nil
	case config.NameByNew:
		return func() (string, bool) { return newFilename, true }, nil
	case config.NameByTicks:
		return func() (string, bool) { return strconv.FormatInt(Ticks(now()), 10), true }, nil
	case config.NameByTicksHex:
		return func() (string, bool) { return strconv.FormatInt(Ticks(now()), 16), true }, nil
	default:
		return nil, fmt.Errorf("unsupported naming strategy %q", strategy)
	}
}

// sequence is the naming state of the active group.
type sequence struct {
	source   stemSource
	stem     string
	hasStem  bool
	accepted int
	rejected int
}

// reset marks a naming generation point.
func (s *sequence) reset() {
	s.stem, s.hasStem = s.source()
	s.accepted = 1
	s.rejected = 1
}

func (s *sequence) nextAccepted(fileName string) string {
	if !s.hasStem {
		return fileName
	}
	name := fmt.Sprintf("%s-%04d", s.stem, s.accepted)
	s.accepted++
	return name
}

func (s *sequence) nextRejected(fileName string) string {
	name := fmt.Sprintf("%s-%04d", fileName, s.rejected)
	s.rejected++
	return name
}
