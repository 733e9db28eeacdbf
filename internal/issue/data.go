package issue

import (
	"fmt"

	"github.com/jingwhale/blockpy/internal/ast"
)

// Data carries the details of a single raised issue. Which fields are
// populated depends on the kind; unset string fields stay empty and an
// unset position has Line 0.
type Data struct {
	Name      string
	Scope     string
	Position  ast.Position
	Type      string
	Old       string
	New       string
	Left      string
	Right     string
	Operation string
}

// Message renders the one-line headline for an issue, phrased for the
// student reading the report.
func Message(k Kind, d Data) string {
	switch k {
	case ParserFailure:
		return d.Name
	case UnconnectedBlocks:
		return "a block placeholder (___) is still in the program"
	case EmptyBody:
		return "this block has no statements in its body"
	case UnnecessaryPass:
		return "this pass statement is unnecessary"
	case UnreadVariables:
		return fmt.Sprintf("variable '%s' is set but its value is never used", d.Name)
	case UndefinedVariables:
		return fmt.Sprintf("variable '%s' is used before it is set", d.Name)
	case PossiblyUndefined:
		return fmt.Sprintf("variable '%s' may be used before it is set", d.Name)
	case OverwrittenVariables:
		return fmt.Sprintf("variable '%s' is overwritten before its value is used", d.Name)
	case AppendToNonList:
		return fmt.Sprintf("append is called on '%s', which is not a list", d.Name)
	case UsedIterationList:
		return fmt.Sprintf("iteration list '%s' is changed inside its own loop", d.Name)
	case UnusedIterationVar:
		return fmt.Sprintf("iteration variable '%s' is never used in the loop body", d.Name)
	case NonListIterations:
		return fmt.Sprintf("'%s' is not a sequence, so it cannot be iterated", d.Name)
	case EmptyIterations:
		return fmt.Sprintf("'%s' is an empty list, so the loop body never runs", d.Name)
	case TypeChanges:
		return fmt.Sprintf("variable '%s' changes type from %s to %s", d.Name, d.Old, d.New)
	case IterVariableIsList:
		return fmt.Sprintf("iteration variable '%s' is the same as the iteration list", d.Name)
	case UnknownFunctions:
		return fmt.Sprintf("'%s' is not a known function", d.Name)
	case NotAFunction:
		return fmt.Sprintf("'%s' is not a function and cannot be called", d.Name)
	case ActionAfterReturn:
		return "this code runs after the function has already returned"
	case IncompatibleTypes:
		return fmt.Sprintf("operator %s cannot combine %s and %s", d.Operation, d.Left, d.Right)
	case ReturnOutsideFunction:
		return "return is used outside of a function definition"
	case ReadOutOfScope:
		return fmt.Sprintf("variable '%s' is read outside the scope that defines it", d.Name)
	case WriteOutOfScope:
		return fmt.Sprintf("variable '%s' is written outside the scope that defines it", d.Name)
	case AliasedBuiltin:
		return fmt.Sprintf("built-in name '%s' is reassigned", d.Name)
	case MethodNotInType:
		return fmt.Sprintf("method '%s' does not exist on type %s", d.Name, d.Type)
	default:
		return string(k)
	}
}
