package document

// DefaultEditLogLimit is the number of edits kept when no limit is configured.
const DefaultEditLogLimit = 1000

// editLog keeps the most recent edits, oldest first.
type editLog struct {
	entries []Edit
	limit   int
}

func newEditLog(limit int) *editLog {
	if limit <= 0 {
		limit = DefaultEditLogLimit
	}
	return &editLog{limit: limit}
}

func (l *editLog) add(e Edit) {
	l.entries = append(l.entries, e)
	if excess := len(l.entries) - l.limit; excess > 0 {
		l.entries = append(l.entries[:0], l.entries[excess:]...)
	}
}

func (l *editLog) list() []Edit {
	out := make([]Edit, len(l.entries))
	copy(out, l.entries)
	return out
}
