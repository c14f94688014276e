package harvest

import (
	"fmt"
	"time"
)

const dateTimeLayout = "2006-01-02 15:04:05"

// formatMillis renders epoch ms as local wall time, truncated to the second.
func formatMillis(ms int64, loc *time.Location) string {
	return time.UnixMilli(ms).In(loc).Format(dateTimeLayout)
}

// formatMillisPrecise renders epoch ms with an explicit .mmm suffix, built from
// the whole seconds and the millisecond remainder.
func formatMillisPrecise(ms int64, loc *time.Location) string {
	sec, rem := ms/1000, ms%1000
	if rem < 0 {
		sec--
		rem += 1000
	}
	return time.Unix(sec, 0).In(loc).Format(dateTimeLayout) + fmt.Sprintf(".%03d", rem)
}
