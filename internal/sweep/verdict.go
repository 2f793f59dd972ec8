package sweep

// ABOUTME: Verdict is the immutable result of scanning a subtree.
// ABOUTME: And folds child verdicts into a parent verdict.

import "time"

// VerdictKind distinguishes the three verdict variants.
type VerdictKind int

// Verdict kinds.
const (
	// AlwaysRemovable is an empty directory.
	AlwaysRemovable VerdictKind = iota
	// Removable means everything beneath the node is stale.
	Removable
	// Blocked means at least one entry beneath the node must be kept.
	Blocked
)

func (k VerdictKind) String() string {
	switch k {
	case AlwaysRemovable:
		return "always_removable"
	case Removable:
		return "removable"
	case Blocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// Verdict classifies a subtree. ReclaimableBytes and MostRecent are only
// meaningful for Removable; Culprit only for Blocked. A zero MostRecent
// means no timestamp was seen.
type Verdict struct {
	Kind             VerdictKind
	ReclaimableBytes uint64
	MostRecent       time.Time
	Culprit          string
}

// EmptyVerdict returns the verdict for a directory with no entries.
func EmptyVerdict() Verdict {
	return Verdict{Kind: AlwaysRemovable}
}

// RemovableVerdict returns a Removable verdict carrying size and timestamp.
func RemovableVerdict(bytes uint64, mostRecent time.Time) Verdict {
	return Verdict{Kind: Removable, ReclaimableBytes: bytes, MostRecent: mostRecent}
}

// BlockedVerdict returns a Blocked verdict naming culprit.
func BlockedVerdict(culprit string) Verdict {
	return Verdict{Kind: Blocked, Culprit: culprit}
}

// IsBlocked reports whether the subtree must be kept.
func (v Verdict) IsBlocked() bool { return v.Kind == Blocked }

// CanRemove reports whether the subtree may be deleted.
func (v Verdict) CanRemove() bool { return v.Kind != Blocked }

// And combines two verdicts. Blocked absorbs everything (the receiver's
// culprit wins if both are blocked), AlwaysRemovable is the identity, and two
// Removable verdicts sum their bytes and keep the later timestamp.
func (v Verdict) And(other Verdict) Verdict {
	switch {
	case v.Kind == Blocked:
		return v
	case other.Kind == Blocked:
		return other
	case v.Kind == AlwaysRemovable:
		return other
	case other.Kind == AlwaysRemovable:
		return v
	}

	latest := v.MostRecent
	if other.MostRecent.After(latest) {
		latest = other.MostRecent
	}
	return RemovableVerdict(v.ReclaimableBytes+other.ReclaimableBytes, latest)
}
