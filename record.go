package followdiff

import "strings"

// ProfileHost is the URL prefix of every profile link in the export.
const ProfileHost = "https://www.instagram.com/"

// Record is one entry of a relationship list.
type Record struct {
	Username   string `json:"username"`
	ProfileURL string `json:"url"`
	Timestamp  string `json:"timestamp"`
}

// Key returns the identity used to match records across lists.
func (r Record) Key() string {
	return strings.ToLower(r.Username)
}

// Validate returns an error if the record contains invalid fields.
func (r Record) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return Errorf(EINVALID, "record username required")
	}
	return nil
}

// ProfileURL builds the profile link for a username.
func ProfileURL(username string) string {
	return ProfileHost + username + "/"
}

// Usernames returns the usernames of records in order.
func Usernames(records []Record) []string {
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Username)
	}
	return names
}

// ListKind identifies one of the relationship lists in an export.
type ListKind string

// Relationship lists found in an export.
const (
	ListFollowers        ListKind = "followers"
	ListFollowing        ListKind = "following"
	ListRequestsReceived ListKind = "requests_received"
	ListRequestsSent     ListKind = "requests_sent"
)

// ListKinds returns every list kind in processing order.
func ListKinds() []ListKind {
	return []ListKind{
		ListRequestsReceived,
		ListRequestsSent,
		ListFollowers,
		ListFollowing,
	}
}

// FileName returns the name of the export file holding the list.
func (k ListKind) FileName() string {
	switch k {
	case ListFollowers:
		return "followers_1.html"
	case ListFollowing:
		return "following.html"
	case ListRequestsReceived:
		return "follow_requests_you've_received.html"
	case ListRequestsSent:
		return "pending_follow_requests.html"
	}
	return ""
}

// Title returns a human readable name for the list.
func (k ListKind) Title() string {
	switch k {
	case ListFollowers:
		return "Followers"
	case ListFollowing:
		return "Following"
	case ListRequestsReceived:
		return "Follow Requests Received"
	case ListRequestsSent:
		return "Pending Requests Sent"
	}
	return string(k)
}

// ParseListKind converts a string into a ListKind.
// Returns EINVALID for unknown kinds.
func ParseListKind(s string) (ListKind, error) {
	for _, k := range ListKinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", Errorf(EINVALID, "unknown list kind %q", s)
}
