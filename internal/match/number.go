package match

// number matches a plain decimal literal: optional sign, digits with an
// optional fraction, or a bare fraction. No exponents, no grouping.
var number = MustCompile(`^[+-]?(?:[0-9]+(?:\.[0-9]+)?|\.[0-9]+)$`)

// IsNumber reports whether s is a plain decimal literal.
func IsNumber(s string) bool {
	return number.MatchString(s)
}
