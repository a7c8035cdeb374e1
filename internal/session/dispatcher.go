package session

import (
	"encoding/json"
	"time"

	"github.com/presidents-game/client-go/internal/proto"
	"github.com/presidents-game/client-go/internal/timer"
)

// Route delivers one inbound event to its session, in arrival order. The
// caller (the transport read loop) is single-threaded per connection, which
// is what keeps per-session ordering.
//
// Faults are contained here: an event for an unregistered session is dropped
// quietly (expected during teardown races), an unknown event name is skipped
// for forward compatibility, and a malformed payload is dropped with a
// diagnostic. None of them can corrupt another session's state.
func (r *Registry) Route(sessionID, event string, data json.RawMessage) {
	sess, err := r.Get(sessionID)
	if err != nil {
		r.log.Debug().Str("session_id", sessionID).Str("event", event).
			Msg("event for unregistered session dropped")
		return
	}

	payload, err := proto.Decode(event, data)
	if err != nil {
		sess.log.Warn().Err(err).Str("event", event).Msg("malformed payload dropped")
		return
	}
	if payload == nil {
		sess.log.Debug().Str("event", event).Msg("unknown event ignored")
		return
	}

	if event == proto.EventSetTime {
		applyTime(sess.timers, payload.(proto.TimeData))
		sess.notifyChange()
		return
	}

	if err := sess.apply(event, payload); err != nil {
		sess.log.Warn().Err(err).Str("event", event).Msg("event dropped")
	}
}

// applyTime translates a set_time snapshot into the timer bank. Times travel
// as milliseconds on the wire.
func applyTime(bank *timer.Bank, p proto.TimeData) {
	remaining := time.Duration(p.Time * float64(time.Millisecond))
	serverTime := time.UnixMilli(int64(p.Timestamp))

	switch p.Which {
	case proto.TimerTrading:
		bank.SetTradingTime(remaining, serverTime, p.Start)
	case proto.TimerReserve:
		bank.SetTime(*p.Spot, timer.Reserve, remaining, serverTime, p.Start)
	case proto.TimerTurn:
		bank.SetTime(*p.Spot, timer.Turn, remaining, serverTime, p.Start)
	}
}
