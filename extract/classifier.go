package extract

import (
	"strings"

	"github.com/poiesic/mailidx/core"
)

// Default digest predicate values. Both can be overridden through the
// persisted configuration.
const (
	DefaultTargetParticipant = "logan.lorenz@offlinestudio.com"
	DefaultSubjectPrefix     = "Mula Daily Digest"
)

// IsDailyDigest reports whether a record belongs to the daily digest
// category: a non-empty participant set containing the target address and a
// subject starting with the fixed prefix. Missing participants or subject
// yield false, never an error. The target is matched exactly against the
// lowercase-normalized participant entries.
func IsDailyDigest(record *core.ThreadRecord, targetAddr, subjectPrefix string) bool {
	if record == nil || len(record.Participants) == 0 || record.Subject == "" {
		return false
	}
	if !record.HasParticipant(targetAddr) {
		return false
	}
	return strings.HasPrefix(record.Subject, subjectPrefix)
}
