package convo

import (
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"github.com/servicezone/concierge/internal/model/convo"
)

// handoff applies the throttling policy and returns the reply segments.
// Outside the cooldown window it emits the full expert contact block and
// stamps LastHandoffAt; inside it, only a short repeat notice so the
// contact block is not re-sent on every pricing question. LastHandoffAt
// never moves backwards and is only cleared by a full reset.
func (c *Controller) handoff(sess *convo.Session, now time.Time) []string {
	if sess.HandedOff() && now.Sub(sess.LastHandoffAt) < c.cooldown {
		return []string{replyHandoffRepeat}
	}

	sess.LastHandoffAt = now
	return c.renderHandoffPayload(sess.Service, referenceCode(sess.UserKey, now))
}

// referenceCode derives a short code from the user key and handoff time so
// the expert can match an incoming chat to the session that triggered it.
func referenceCode(userKey string, at time.Time) string {
	h := fnv.New32a()
	h.Write([]byte(userKey))
	h.Write([]byte(strconv.FormatInt(at.Unix(), 10)))
	return strings.ToUpper(strconv.FormatUint(uint64(h.Sum32()), 36))
}
