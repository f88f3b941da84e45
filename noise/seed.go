package noise

import "time"

// TimeSeed derives a seed from the wall clock.
func TimeSeed() uint64 {
	return uint64(time.Now().UnixNano())
}
