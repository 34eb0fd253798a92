package observability

import (
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks traces ordering events to a structured logger at debug level.
// Cycle detection is logged at error level regardless of the logger's level.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks writing to l, or to log.Default() when l is nil.
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{Logger: l}
}

func (h *LogHooks) OnAddOrder(insertCase string, size int) {
	h.Logger.Debug("add order", "case", insertCase, "steps", size)
}

func (h *LogHooks) OnInherit(parentKnown bool, existing, inserted, size int) {
	if !parentKnown {
		h.Logger.Debug("inherit skipped, parent unconstrained", "existing", existing, "inserted", inserted)
		return
	}
	h.Logger.Debug("inherit ordering", "existing", existing, "inserted", inserted, "steps", size)
}

func (h *LogHooks) OnTopsort(size int, duration time.Duration, err error) {
	if err != nil {
		h.Logger.Error("linearization failed", "steps", size, "err", err)
		return
	}
	h.Logger.Debug("linearized", "steps", size, "took", duration.Round(time.Microsecond))
}

func (h *LogHooks) OnCopy(size int) {
	h.Logger.Debug("copied store", "steps", size)
}

var _ OrderingHooks = (*LogHooks)(nil)
