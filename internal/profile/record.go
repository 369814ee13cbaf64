package profile

import (
	"sort"
	"time"
)

// UserProfile is the persisted per-user data. Times are Unix epoch
// milliseconds so the blob stays readable by any JSON consumer.
type UserProfile struct {
	HighScore   int    `json:"highScore"`
	LastPlayed  int64  `json:"lastPlayed"`
	ArchiveDate *int64 `json:"archiveDate,omitempty"`
}

// LastPlayedAt returns LastPlayed as a time.Time.
func (p UserProfile) LastPlayedAt() time.Time {
	return time.UnixMilli(p.LastPlayed)
}

// ArchivedAt returns ArchiveDate as a time.Time, or the zero time if the
// profile was never archived.
func (p UserProfile) ArchivedAt() time.Time {
	if p.ArchiveDate == nil {
		return time.Time{}
	}
	return time.UnixMilli(*p.ArchiveDate)
}

// Record is the whole persisted blob. A username appears in at most one of
// Users and ArchivedUsers.
type Record struct {
	Users         map[string]UserProfile `json:"users"`
	ArchivedUsers map[string]UserProfile `json:"archivedUsers"`
	CurrentUser   *string                `json:"currentUser"`
}

// NewRecord returns the record used when nothing has been persisted yet.
func NewRecord() *Record {
	return &Record{
		Users:         map[string]UserProfile{},
		ArchivedUsers: map[string]UserProfile{},
	}
}

// Exists reports whether name is taken by an active or archived user.
func (r *Record) Exists(name string) bool {
	_, active := r.Users[name]
	_, archived := r.ArchivedUsers[name]
	return active || archived
}

// Current returns the logged-in user. A currentUser that does not name an
// active user counts as nobody.
func (r *Record) Current() (string, UserProfile, bool) {
	if r.CurrentUser == nil {
		return "", UserProfile{}, false
	}
	p, ok := r.Users[*r.CurrentUser]
	if !ok {
		return "", UserProfile{}, false
	}
	return *r.CurrentUser, p, true
}

// archive moves name from Users to ArchivedUsers, stamping the archive time.
func (r *Record) archive(name string, now time.Time) {
	p := r.Users[name]
	ts := now.UnixMilli()
	p.ArchiveDate = &ts
	r.ArchivedUsers[name] = p
	delete(r.Users, name)
}

func (r *Record) normalize() {
	if r.Users == nil {
		r.Users = map[string]UserProfile{}
	}
	if r.ArchivedUsers == nil {
		r.ArchivedUsers = map[string]UserProfile{}
	}
}

// Entry is one row of the user listing.
type Entry struct {
	Name     string
	Profile  UserProfile
	Archived bool
}

// Entries lists active users then archived users, each sorted by name.
func (r *Record) Entries() []Entry {
	out := make([]Entry, 0, len(r.Users)+len(r.ArchivedUsers))
	for _, name := range sortedKeys(r.Users) {
		out = append(out, Entry{Name: name, Profile: r.Users[name]})
	}
	for _, name := range sortedKeys(r.ArchivedUsers) {
		out = append(out, Entry{Name: name, Profile: r.ArchivedUsers[name], Archived: true})
	}
	return out
}

func sortedKeys(m map[string]UserProfile) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
