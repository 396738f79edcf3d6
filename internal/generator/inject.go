package generator

import (
	"math/rand"
	"time"
)

// minutesBetween returns a random duration of [lo, hi] whole minutes.
func minutesBetween(rng *rand.Rand, lo, hi int) time.Duration {
	return time.Duration(rng.Intn(hi-lo+1)+lo) * time.Minute
}

// injectSelfLoop repeats a random event immediately after itself one minute
// later, simulating a process loop. Sequences shorter than 2 are returned
// unchanged.
func injectSelfLoop(rng *rand.Rand, events []Event) []Event {
	if len(events) < 2 {
		return events
	}
	i := rng.Intn(len(events)-1) + 1
	loop := events[i-1]
	loop.Timestamp = loop.Timestamp.Add(time.Minute)

	out := make([]Event, 0, len(events)+1)
	out = append(out, events[:i]...)
	out = append(out, loop)
	out = append(out, events[i:]...)
	return out
}

// injectPingPong swaps a random adjacent pair and reassigns their timestamps
// so the earlier event ends up later, simulating oscillation between two
// activities. The resulting timestamps are intentionally non-monotonic.
func injectPingPong(rng *rand.Rand, events []Event) []Event {
	if len(events) < 2 {
		return events
	}
	i := rng.Intn(len(events)-1) + 1
	ping := events[i-1]
	pong := events[i]
	pong.Timestamp = ping.Timestamp.Add(time.Minute)
	ping.Timestamp = pong.Timestamp.Add(time.Minute)

	out := make([]Event, len(events))
	copy(out, events)
	out[i-1] = pong
	out[i] = ping
	return out
}

// injectGap moves a random event to [60, 180] minutes after its predecessor,
// simulating an abnormally long wait. Order is preserved.
func injectGap(rng *rand.Rand, events []Event) []Event {
	if len(events) < 2 {
		return events
	}
	i := rng.Intn(len(events)-1) + 1
	ev := events[i]
	ev.Timestamp = events[i-1].Timestamp.Add(minutesBetween(rng, 60, 180))

	out := make([]Event, len(events))
	copy(out, events)
	out[i] = ev
	return out
}

// injectError flips the result of one random event to "error". Empty
// sequences are returned unchanged.
func injectError(rng *rand.Rand, events []Event) []Event {
	if len(events) == 0 {
		return events
	}
	i := rng.Intn(len(events))
	ev := events[i]
	ev.Result = ResultError

	out := make([]Event, len(events))
	copy(out, events)
	out[i] = ev
	return out
}
