// Package token defines the token kinds produced by the CSV scanner.
package token

// Kind represents the type of a scanned token.
type Kind uint8

const (
	ILLEGAL Kind = iota // <illegal>
	EOF                 // EOF
	FIELD               // <field>
	EOR                 // <end-of-record>
)

var kindNames = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	FIELD:   "FIELD",
	EOR:     "EOR",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsBoundary returns true if the token ends a record (EOR or EOF).
func (k Kind) IsBoundary() bool {
	return k == EOR || k == EOF
}
