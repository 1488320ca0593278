package followdiff

// Matcher derives the key two records are compared by.
type Matcher func(Record) string

// CaseInsensitive matches usernames regardless of case.
func CaseInsensitive(r Record) string {
	return r.Key()
}

// CaseSensitive matches usernames exactly. Instagram usernames are lower-case,
// so this only differs from CaseInsensitive on hand-edited exports.
func CaseSensitive(r Record) string {
	return r.Username
}

// NonFollowers returns the accounts in following that do not appear in
// followers, compared case-insensitively. Order of following is preserved.
func NonFollowers(followers, following []Record) []Record {
	return Difference(following, followers, CaseInsensitive)
}

// Fans returns the accounts in followers that you do not follow back.
func Fans(followers, following []Record) []Record {
	return Difference(followers, following, CaseInsensitive)
}

// Difference returns the records of a whose key is absent from b.
// The result keeps the order of a and never aliases its backing array.
// A nil matcher means CaseInsensitive.
func Difference(a, b []Record, match Matcher) []Record {
	if match == nil {
		match = CaseInsensitive
	}

	keys := make(map[string]struct{}, len(b))
	for _, r := range b {
		keys[match(r)] = struct{}{}
	}

	out := make([]Record, 0, len(a))
	for _, r := range a {
		if _, ok := keys[match(r)]; ok {
			continue
		}
		out = append(out, r)
	}
	return out
}
