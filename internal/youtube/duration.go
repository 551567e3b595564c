package youtube

import (
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

// ErrInvalidDuration is returned when a contentDetails duration is not ISO 8601.
var ErrInvalidDuration = errors.New("invalid ISO 8601 duration")

var durationRE = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseDuration converts a duration such as PT1H2M3S into whole seconds.
// Missing components count as zero, so "PT" is 0.
func ParseDuration(code string) (int, error) {
	m := durationRE.FindStringSubmatch(code)
	if m == nil {
		return 0, errors.Wrapf(ErrInvalidDuration, "%q", code)
	}

	units := [...]int{86400, 3600, 60, 1}
	total := 0
	for i, unit := range units {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0, errors.Wrapf(ErrInvalidDuration, "%q", code)
		}
		total += n * unit
	}
	return total, nil
}
