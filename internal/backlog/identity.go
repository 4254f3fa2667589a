package backlog

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
)

// fingerprintWidths are tried in order until a uid is free. The first one
// is the only one in practice; wider ones exist for digest prefix clashes.
var fingerprintWidths = []int{8, 16, md5.Size * 2}

// TaskRef is the identity input of one checklist item.
type TaskRef struct {
	Project string // "{org}/{repo}"
	File    string
	Line    int
	ID      string // explicit identifier, or ""
	Title   string
}

// Fingerprint returns the hex MD5 digest of
// "{project}#{id-or-file}:{line}:{title}".
func Fingerprint(ref TaskRef) string {
	key := ref.ID
	if key == "" {
		key = ref.File
	}

	sum := md5.Sum([]byte(ref.Project + "#" + key + ":" + strconv.Itoa(ref.Line) + ":" + ref.Title))

	return hex.EncodeToString(sum[:])
}

// Assigner hands out uids that are unique within one scan.
//
// An explicit identifier maps to "{project}#{id}". The first holder of an
// explicit uid keeps it; later items with the same identifier get
// "{project}#{id}-{fingerprint}". Items without an identifier get
// "{project}#{fingerprint}". Output depends only on the inputs and the order
// of calls, never on time or randomness.
type Assigner struct {
	seen map[string]struct{}
}

// NewAssigner returns an [Assigner] with no uids taken.
func NewAssigner() *Assigner {
	return &Assigner{seen: make(map[string]struct{})}
}

// Assign returns the uid for ref and reports whether it had to be
// disambiguated from an earlier item.
func (a *Assigner) Assign(ref TaskRef) (string, bool) {
	base := ref.Project + "#"

	if ref.ID != "" {
		uid := base + ref.ID
		if a.take(uid) {
			return uid, false
		}

		anon := ref
		anon.ID = ""

		return a.takeFingerprint(base+ref.ID+"-", Fingerprint(anon)), true
	}

	digest := Fingerprint(ref)
	uid := a.takeFingerprint(base, digest)

	return uid, uid != base+digest[:fingerprintWidths[0]]
}

func (a *Assigner) takeFingerprint(prefix, digest string) string {
	var uid string

	for _, width := range fingerprintWidths {
		uid = prefix + digest[:width]
		if a.take(uid) {
			return uid
		}
	}

	return uid
}

func (a *Assigner) take(uid string) bool {
	if _, ok := a.seen[uid]; ok {
		return false
	}

	a.seen[uid] = struct{}{}

	return true
}
