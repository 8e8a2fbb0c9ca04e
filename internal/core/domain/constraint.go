package domain

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// opBoundary splits comparators written without separating space, as in ">=0.4.19<0.7.0".
var opBoundary = regexp.MustCompile(`([0-9xX*])\s*([<>=^~])`)

// Interval is a half-open version range [Lower, Upper).
// An interval without an upper bound extends to every later release.
type Interval struct {
	Lower    CompilerVersion
	Upper    CompilerVersion
	HasUpper bool
}

// FullInterval contains every version.
func FullInterval() Interval {
	return Interval{Lower: NewCompilerVersion(0, 0, 0)}
}

// IsEmpty reports whether no version lies inside the interval.
func (i Interval) IsEmpty() bool {
	return i.HasUpper && i.Upper.Compare(i.Lower) <= 0
}

// Contains reports whether v lies inside the interval.
func (i Interval) Contains(v CompilerVersion) bool {
	if v.Less(i.Lower) {
		return false
	}
	return !i.HasUpper || v.Less(i.Upper)
}

// Intersect returns the overlap of i and o, possibly empty.
func (i Interval) Intersect(o Interval) Interval {
	out := i
	if o.Lower.Compare(out.Lower) > 0 {
		out.Lower = o.Lower
	}
	if o.HasUpper && (!out.HasUpper || o.Upper.Less(out.Upper)) {
		out.Upper = o.Upper
		out.HasUpper = true
	}
	return out
}

// Covers reports whether o lies entirely inside i.
func (i Interval) Covers(o Interval) bool {
	if o.Lower.Less(i.Lower) {
		return false
	}
	if !i.HasUpper {
		return true
	}
	return o.HasUpper && o.Upper.Compare(i.Upper) <= 0
}

// String renders the interval in pragma notation.
func (i Interval) String() string {
	zero := NewCompilerVersion(0, 0, 0)
	switch {
	case i.IsEmpty():
		return "<none>"
	case i.HasUpper && i.Upper.Equal(i.Lower.NextPatch()):
		return "=" + i.Lower.String()
	case !i.HasUpper && i.Lower.Equal(zero):
		return "*"
	case !i.HasUpper:
		return ">=" + i.Lower.String()
	case i.Lower.Equal(zero):
		return "<" + i.Upper.String()
	}
	return ">=" + i.Lower.String() + " <" + i.Upper.String()
}

// ConstraintTerm is one comparator of a pragma expression as written, after
// spacing has been normalized (">= 0.4.19" becomes {">=", "0.4.19"}).
type ConstraintTerm struct {
	Op      string
	Version string
}

func (t ConstraintTerm) String() string {
	return t.Op + t.Version
}

// VersionConstraint is the set of compiler versions a module accepts.
//
// The zero value is unconstrained. A constraint produced by intersecting
// disjoint ranges is unsatisfiable and contains no version.
type VersionConstraint struct {
	// Raw is the pragma expression as written, empty for derived constraints.
	Raw string
	// Terms are the parsed comparators grouped per "||" alternative.
	Terms [][]ConstraintTerm

	ranges []Interval
	unsat  bool
}

// Unconstrained returns the constraint accepting every version.
func Unconstrained() VersionConstraint {
	return VersionConstraint{}
}

// NewVersionConstraint builds a constraint from explicit intervals.
func NewVersionConstraint(raw string, intervals ...Interval) VersionConstraint {
	c := VersionConstraint{Raw: raw}
	c.ranges = normalizeIntervals(intervals)
	c.unsat = len(c.ranges) == 0
	return c
}

// ParseConstraint parses the expression of a "pragma solidity" statement.
//
// Irregular spacing between operators and versions is tolerated, so
// ">= 0.4.19  < 0.7.0" parses identically to ">=0.4.19 <0.7.0". An empty
// expression is unconstrained. A malformed expression returns a
// *MalformedPragmaWarning and the unconstrained value.
func ParseConstraint(raw string) (VersionConstraint, error) {
	expr := strings.TrimSpace(raw)
	if expr == "" {
		return Unconstrained(), nil
	}

	var (
		terms     [][]ConstraintTerm
		intervals []Interval
	)
	for _, alt := range strings.Split(expr, "||") {
		altTerms, err := tokenizeAlternative(alt)
		if err != nil {
			return Unconstrained(), &MalformedPragmaWarning{Raw: expr, Reason: err.Error()}
		}
		if len(altTerms) == 0 {
			return Unconstrained(), &MalformedPragmaWarning{Raw: expr, Reason: "empty alternative"}
		}

		acc := FullInterval()
		for idx := 0; idx < len(altTerms); idx++ {
			term := altTerms[idx]
			if term.Op == "-" {
				return Unconstrained(), &MalformedPragmaWarning{Raw: expr, Reason: "dangling hyphen range"}
			}
			interval, err := termInterval(term)
			if err != nil {
				return Unconstrained(), &MalformedPragmaWarning{Raw: expr, Reason: err.Error()}
			}
			if idx+1 < len(altTerms) && altTerms[idx+1].Op == "-" {
				upper, err := termInterval(ConstraintTerm{Op: "<=", Version: altTerms[idx+1].Version})
				if err != nil {
					return Unconstrained(), &MalformedPragmaWarning{Raw: expr, Reason: err.Error()}
				}
				lower, _ := termInterval(ConstraintTerm{Op: ">=", Version: term.Version})
				interval = lower.Intersect(upper)
				idx++
			}
			acc = acc.Intersect(interval)
		}
		terms = append(terms, altTerms)
		intervals = append(intervals, acc)
	}

	c := NewVersionConstraint(expr, intervals...)
	c.Terms = terms
	return c, nil
}

// tokenizeAlternative splits one alternative into comparator terms. Operator
// tokens without digits are glued onto the following version token.
func tokenizeAlternative(alt string) ([]ConstraintTerm, error) {
	var (
		terms   []ConstraintTerm
		pending string
	)
	alt = opBoundary.ReplaceAllString(alt, "$1 $2")
	for _, field := range strings.Fields(alt) {
		if !isVersionToken(field) {
			pending += field
			continue
		}
		tok := pending + field
		pending = ""
		op, ver := splitOperator(tok)
		if !validOperator(op) {
			return nil, strconvError("unknown operator", op)
		}
		terms = append(terms, ConstraintTerm{Op: op, Version: ver})
	}
	if pending != "" {
		return nil, strconvError("operator without version", pending)
	}
	return terms, nil
}

func isVersionToken(field string) bool {
	if strings.ContainsAny(field, "0123456789") {
		return true
	}
	_, ver := splitOperator(field)
	return ver == "*" || ver == "x" || ver == "X"
}

func splitOperator(tok string) (op, version string) {
	i := strings.IndexFunc(tok, func(r rune) bool {
		return !strings.ContainsRune("<>=^~-", r)
	})
	if i < 0 {
		return tok, ""
	}
	return tok[:i], tok[i:]
}

func validOperator(op string) bool {
	switch op {
	case "", "=", ">", ">=", "<", "<=", "^", "~", "-":
		return true
	}
	return false
}

// partialVersion is a possibly incomplete version such as "0.8" or "0.8.x".
type partialVersion struct {
	parts [3]uint64
	n     int
}

func parsePartial(s string) (partialVersion, error) {
	var p partialVersion
	s = strings.TrimPrefix(s, "v")
	if s == "*" || s == "x" || s == "X" {
		return p, nil
	}
	fields := strings.Split(s, ".")
	if len(fields) > 3 {
		return p, strconvError("too many version components", s)
	}
	for i, f := range fields {
		if f == "x" || f == "X" || f == "*" {
			break
		}
		n, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return p, strconvError("invalid version component", s)
		}
		p.parts[i] = n
		p.n = i + 1
	}
	return p, nil
}

func (p partialVersion) lower() CompilerVersion {
	return NewCompilerVersion(p.parts[0], p.parts[1], p.parts[2])
}

// next returns the first version past every version matched by p.
func (p partialVersion) next() (CompilerVersion, bool) {
	switch p.n {
	case 3:
		return NewCompilerVersion(p.parts[0], p.parts[1], p.parts[2]+1), true
	case 2:
		return NewCompilerVersion(p.parts[0], p.parts[1]+1, 0), true
	case 1:
		return NewCompilerVersion(p.parts[0]+1, 0, 0), true
	}
	return CompilerVersion{}, false
}

func termInterval(t ConstraintTerm) (Interval, error) {
	p, err := parsePartial(t.Version)
	if err != nil {
		return Interval{}, err
	}
	lower := p.lower()
	next, bounded := p.next()
	zero := NewCompilerVersion(0, 0, 0)

	switch t.Op {
	case "", "=":
		return Interval{Lower: lower, Upper: next, HasUpper: bounded}, nil
	case ">=":
		return Interval{Lower: lower}, nil
	case ">":
		if !bounded {
			return Interval{Lower: zero, Upper: zero, HasUpper: true}, nil
		}
		return Interval{Lower: next}, nil
	case "<":
		return Interval{Lower: zero, Upper: lower, HasUpper: true}, nil
	case "<=":
		return Interval{Lower: zero, Upper: next, HasUpper: bounded}, nil
	case "~":
		switch p.n {
		case 0:
			return FullInterval(), nil
		case 1:
			return Interval{Lower: lower, Upper: next, HasUpper: true}, nil
		}
		return Interval{Lower: lower, Upper: NewCompilerVersion(p.parts[0], p.parts[1]+1, 0), HasUpper: true}, nil
	case "^":
		return caretInterval(p), nil
	}
	return Interval{}, strconvError("unknown operator", t.Op)
}

// caretInterval follows npm semantics: the leftmost non-zero component is fixed.
func caretInterval(p partialVersion) Interval {
	lower := p.lower()
	switch {
	case p.n == 0:
		return FullInterval()
	case p.parts[0] > 0 || p.n == 1:
		return Interval{Lower: lower, Upper: NewCompilerVersion(p.parts[0]+1, 0, 0), HasUpper: true}
	case p.parts[1] > 0 || p.n == 2:
		return Interval{Lower: lower, Upper: NewCompilerVersion(0, p.parts[1]+1, 0), HasUpper: true}
	}
	return Interval{Lower: lower, Upper: NewCompilerVersion(0, 0, p.parts[2]+1), HasUpper: true}
}

// normalizeIntervals drops empty intervals, sorts by lower bound and merges
// overlapping or adjacent ones.
func normalizeIntervals(in []Interval) []Interval {
	out := make([]Interval, 0, len(in))
	for _, i := range in {
		if !i.IsEmpty() {
			out = append(out, i)
		}
	}
	slices.SortFunc(out, func(a, b Interval) int { return a.Lower.Compare(b.Lower) })

	merged := out[:0]
	for _, i := range out {
		if n := len(merged); n > 0 {
			last := &merged[n-1]
			if !last.HasUpper || i.Lower.Compare(last.Upper) <= 0 {
				if last.HasUpper && (!i.HasUpper || last.Upper.Less(i.Upper)) {
					last.Upper, last.HasUpper = i.Upper, i.HasUpper
				}
				continue
			}
		}
		merged = append(merged, i)
	}
	return merged
}

// Intervals returns the normalized disjoint intervals of c.
// An unsatisfiable constraint returns nil.
func (c VersionConstraint) Intervals() []Interval {
	if c.unsat {
		return nil
	}
	if c.ranges == nil {
		return []Interval{FullInterval()}
	}
	return slices.Clone(c.ranges)
}

// IsUnconstrained reports whether every version is accepted.
func (c VersionConstraint) IsUnconstrained() bool {
	if c.unsat {
		return false
	}
	if c.ranges == nil {
		return true
	}
	return len(c.ranges) == 1 && FullInterval().Covers(c.ranges[0]) && c.ranges[0].Covers(FullInterval())
}

// IsSatisfiable reports whether at least one version is accepted.
func (c VersionConstraint) IsSatisfiable() bool {
	return !c.unsat
}

// Intersect returns the versions accepted by both c and o.
// The result never accepts a version that either input rejects.
func (c VersionConstraint) Intersect(o VersionConstraint) VersionConstraint {
	if c.IsUnconstrained() {
		return VersionConstraint{ranges: o.ranges, unsat: o.unsat}
	}
	if o.IsUnconstrained() {
		return VersionConstraint{ranges: c.ranges, unsat: c.unsat}
	}
	var out []Interval
	for _, a := range c.Intervals() {
		for _, b := range o.Intervals() {
			if i := a.Intersect(b); !i.IsEmpty() {
				out = append(out, i)
			}
		}
	}
	return NewVersionConstraint("", out...)
}

// SubsetOf reports whether every version accepted by c is accepted by o.
func (c VersionConstraint) SubsetOf(o VersionConstraint) bool {
	outer := o.Intervals()
	for _, inner := range c.Intervals() {
		if !slices.ContainsFunc(outer, func(i Interval) bool { return i.Covers(inner) }) {
			return false
		}
	}
	return true
}

// Contains reports whether v is accepted.
func (c VersionConstraint) Contains(v CompilerVersion) bool {
	return slices.ContainsFunc(c.Intervals(), func(i Interval) bool { return i.Contains(v) })
}

// MaxSatisfying returns the highest candidate accepted by c.
func (c VersionConstraint) MaxSatisfying(candidates []CompilerVersion) (CompilerVersion, bool) {
	var (
		best  CompilerVersion
		found bool
	)
	for _, v := range candidates {
		if !c.Contains(v) {
			continue
		}
		if !found || v.Compare(best) > 0 {
			best, found = v, true
		}
	}
	return best, found
}

// Equal reports whether both constraints accept exactly the same versions.
func (c VersionConstraint) Equal(o VersionConstraint) bool {
	return c.SubsetOf(o) && o.SubsetOf(c)
}

// String renders the accepted set in pragma notation.
func (c VersionConstraint) String() string {
	if c.unsat {
		return "<none>"
	}
	parts := make([]string, 0, len(c.ranges))
	for _, i := range c.Intervals() {
		parts = append(parts, i.String())
	}
	return strings.Join(parts, " || ")
}

type constraintSyntaxError struct {
	msg   string
	token string
}

func (e constraintSyntaxError) Error() string {
	return e.msg + " " + strconv.Quote(e.token)
}

func strconvError(msg, token string) error {
	return constraintSyntaxError{msg: msg, token: token}
}
