package ordering

// InsertCase names the closure-maintenance case that handled an
// [Store.AddOrder] call.
type InsertCase int

const (
	// CaseSentinel: one endpoint was a sentinel or both were the same step;
	// nothing was stored.
	CaseSentinel InsertCase = iota
	// CaseBothNew: neither step was known.
	CaseBothNew
	// CaseLaterNew: the earlier step was known, the later step was new.
	CaseLaterNew
	// CaseEarlierNew: the earlier step was new, the later step was known.
	CaseEarlierNew
	// CaseBothKnown: both steps were known and the closure was extended
	// across the new edge.
	CaseBothKnown
	// CaseRedundant: both steps were known and already ordered.
	CaseRedundant
)

func (c InsertCase) String() string {
	switch c {
	case CaseSentinel:
		return "sentinel"
	case CaseBothNew:
		return "both_new"
	case CaseLaterNew:
		return "later_new"
	case CaseEarlierNew:
		return "earlier_new"
	case CaseBothKnown:
		return "both_known"
	case CaseRedundant:
		return "redundant"
	}
	return "unknown"
}

// Stats tallies AddOrder calls by case. Each store owns its own Stats;
// copies start from the source's tallies.
type Stats struct {
	Sentinel   int `json:"sentinel"`
	BothNew    int `json:"both_new"`
	LaterNew   int `json:"later_new"`
	EarlierNew int `json:"earlier_new"`
	BothKnown  int `json:"both_known"`
	Redundant  int `json:"redundant"`
	Inherits   int `json:"inherits"`
}

// Total returns the number of AddOrder calls counted.
func (st Stats) Total() int {
	return st.Sentinel + st.BothNew + st.LaterNew + st.EarlierNew + st.BothKnown + st.Redundant
}

func (st *Stats) record(c InsertCase) {
	switch c {
	case CaseSentinel:
		st.Sentinel++
	case CaseBothNew:
		st.BothNew++
	case CaseLaterNew:
		st.LaterNew++
	case CaseEarlierNew:
		st.EarlierNew++
	case CaseBothKnown:
		st.BothKnown++
	case CaseRedundant:
		st.Redundant++
	}
}

// Stats returns the store's insertion tallies.
func (s *Store) Stats() Stats { return s.stats }
