package track

import (
	"log"
	"time"
)

// Await resolves the track readiness signal once. It blocks until the builder
// delivers a curve on ready, or until the bounded wait elapses, in which case
// the fallback is used; the motion system must never start without a path.
//
// Parameters:
//   - ready: channel the track builder delivers its curve on; a closed channel counts as a failed delivery
//   - timeout: bounded wait before giving up on the builder
//   - fallback: constructor for the substitute curve (must not return nil)
//
// Returns:
//   - Curve: the delivered curve, or the fallback
func Await(ready <-chan Curve, timeout time.Duration, fallback func() Curve) Curve {
	select {
	case c, ok := <-ready:
		if !ok || c == nil {
			log.Printf("[Track] builder closed without delivering a curve, using fallback")
			return fallback()
		}
		return c
	case <-time.After(timeout):
		log.Printf("[Track] builder not ready after %s, using fallback", timeout)
		return fallback()
	}
}
