package internal

import "strconv"

// Unique hands out collision-free identifiers for one generated module.
//
// Ensure is idempotent per requested name. From always returns a fresh
// name_N. Claim returns the first free name of the form name, name_1, ...
// without caching it. No two calls ever return the same identifier, and
// reserved keywords get a trailing underscore.
type Unique struct {
	next    map[string]int
	ensured map[string]string
	issued  map[string]struct{}
}

// NewUnique creates an empty uniquifier
func NewUnique() *Unique {
	return &Unique{
		next:    make(map[string]int),
		ensured: make(map[string]string),
		issued:  make(map[string]struct{}),
	}
}

// Ensure returns the identifier for name, allocating it on first use
func (u *Unique) Ensure(name string) string {
	if ident, ok := u.ensured[name]; ok {
		return ident
	}
	ident := u.allocate(name, false)
	u.ensured[name] = ident
	return ident
}

// From allocates a fresh numbered identifier: name_1, name_2, ...
func (u *Unique) From(name string) string {
	return u.allocate(name, true)
}

// Claim allocates name itself when free, otherwise the next numbered form
func (u *Unique) Claim(name string) string {
	return u.allocate(name, false)
}

// Issued reports whether ident has been handed out
func (u *Unique) Issued(ident string) bool {
	_, ok := u.issued[ident]
	return ok
}

func (u *Unique) allocate(name string, numbered bool) string {
	i := u.next[name]
	if numbered && i == 0 {
		i = 1
	}
	for {
		candidate := name
		if i > 0 {
			candidate = name + "_" + strconv.Itoa(i)
		}
		if IsReserved(candidate) {
			candidate += "_"
		}
		i++
		if _, taken := u.issued[candidate]; taken {
			continue
		}
		u.next[name] = i
		u.issued[candidate] = struct{}{}
		return candidate
	}
}
