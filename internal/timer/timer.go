package timer

import (
	"sync/atomic"
	"time"
)

// Resolution is the frequency at which time is updated. Default 500ms are precise enough
// for both I/O deadlines and the Date header, which has a resolution of a second anyway
const Resolution = 500 * time.Millisecond

// DateLayout is the RFC 1123 layout of the Date header. The time must be in UTC.
const DateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// millis contains the unix-time in milliseconds updated every Resolution
var millis = new(atomic.Int64)

func Now() time.Time {
	ms := millis.Load()
	return time.Unix(ms/1000, (ms%1000)*1e6)
}

// AppendDate renders the current time into the buffer in the Date header format.
func AppendDate(buff []byte) []byte {
	return Now().UTC().AppendFormat(buff, DateLayout)
}

func init() {
	// there is no guarantee that the goroutine will be started immediately. If it won't,
	// some rapid usage of the timer will result in zero-time
	millis.Store(time.Now().UnixMilli())

	go func() {
		for {
			millis.Store(time.Now().UnixMilli())
			time.Sleep(Resolution)
		}
	}()
}
