package scanner

// State is the quote state of the scanner while it reads one field.
type State uint8

const (
	Unquoted            State = iota // outside quotes
	Quoted                           // inside a quoted field
	QuotedPendingEscape              // saw a quote inside a quoted field
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case Unquoted:
		return "Unquoted"
	case Quoted:
		return "Quoted"
	case QuotedPendingEscape:
		return "QuotedPendingEscape"
	default:
		return "State(?)"
	}
}

// Action describes what a transition does with the byte that caused it.
type Action uint8

const (
	Content Action = iota // byte is field content
	Open                  // byte opens a quoted field
	Hold                  // byte is a quote whose meaning depends on the next byte
	Escape                // byte completes a doubled quote
	Close                 // the held quote closed the field; byte is not consumed
)

// String returns the name of the action.
func (a Action) String() string {
	switch a {
	case Content:
		return "Content"
	case Open:
		return "Open"
	case Hold:
		return "Hold"
	case Escape:
		return "Escape"
	case Close:
		return "Close"
	default:
		return "Action(?)"
	}
}

// Next returns the state after reading c in state s, and the action taken.
// Delimiters and line breaks are not special here: in Unquoted state the
// caller ends the field before calling Next, in the quoted states they are
// content or close the field.
func (s State) Next(c, quote byte) (State, Action) {
	switch s {
	case Quoted:
		if c == quote {
			return QuotedPendingEscape, Hold
		}
		return Quoted, Content
	case QuotedPendingEscape:
		if c == quote {
			return Quoted, Escape
		}
		return Unquoted, Close
	default:
		if c == quote {
			return Quoted, Open
		}
		return Unquoted, Content
	}
}
