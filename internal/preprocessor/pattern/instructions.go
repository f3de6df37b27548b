// preprocessor/pattern/instructions.go

package pattern

import "fmt"

// Op is the kind of a compiled pattern token.
type Op byte

// Pattern instructions
const (
	// Consumes exactly one input token
	OpWord     Op = iota // equal word
	OpSymbol             // equal symbol
	OpVariable           // any token, bound by name

	// Consumes one or more input tokens
	OpStar       // low priority wildcard
	OpUnderscore // high priority wildcard
)

// IsWildcard returns true if the op consumes a span of input.
func (op Op) IsWildcard() bool {
	return op == OpStar || op == OpUnderscore
}

// String returns the string representation of the op.
func (op Op) String() string {
	switch op {
	case OpWord:
		return "WORD"
	case OpSymbol:
		return "SYMBOL"
	case OpVariable:
		return "VARIABLE"
	case OpStar:
		return "STAR"
	case OpUnderscore:
		return "UNDERSCORE"
	default:
		return fmt.Sprintf("UNKNOWN_OP(%d)", byte(op))
	}
}

// Token is a single compiled pattern instruction.
type Token struct {
	Op   Op     // The operation
	Text string // Comparison key for words and symbols
	Name string // Variable name for OpVariable
}

func (t Token) String() string {
	switch t.Op {
	case OpWord, OpSymbol:
		return fmt.Sprintf("%s(%s)", t.Op, t.Text)
	case OpVariable:
		return fmt.Sprintf("%s(%s)", t.Op, t.Name)
	default:
		return t.Op.String()
	}
}
