package issue

// Kind identifies one category of feedback the analyzer can attach to a
// report. The names are the stable, user-facing vocabulary of the tool:
// graders and editor clients key off these exact strings.
type Kind string

const (
	// Parsing and block-editor structure
	ParserFailure     Kind = "Parser Failure"
	UnconnectedBlocks Kind = "Unconnected blocks"
	EmptyBody         Kind = "Empty Body"
	UnnecessaryPass   Kind = "Unnecessary Pass"

	// Variable definition and use
	UnreadVariables      Kind = "Unread variables"
	UndefinedVariables   Kind = "Undefined variables"
	PossiblyUndefined    Kind = "Possibly undefined variables"
	OverwrittenVariables Kind = "Overwritten variables"
	ReadOutOfScope       Kind = "Read out of scope"
	WriteOutOfScope      Kind = "Write out of scope"
	AliasedBuiltin       Kind = "Aliased built-in"

	// Iteration
	UsedIterationList  Kind = "Used iteration list"
	UnusedIterationVar Kind = "Unused iteration variable"
	NonListIterations  Kind = "Non-list iterations"
	EmptyIterations    Kind = "Empty iterations"
	IterVariableIsList Kind = "Iteration variable is iteration list"

	// Types and calls
	TypeChanges       Kind = "Type changes"
	IncompatibleTypes Kind = "Incompatible types"
	AppendToNonList   Kind = "Append to non-list"
	MethodNotInType   Kind = "Method not in Type"
	UnknownFunctions  Kind = "Unknown functions"
	NotAFunction      Kind = "Not a function"

	// Control flow
	ActionAfterReturn     Kind = "Action after return"
	ReturnOutsideFunction Kind = "Return outside function"
)

// AllKinds returns every kind in a stable order. Reports pre-seed their
// issue table with all of them so consumers never see a missing key.
func AllKinds() []Kind {
	return []Kind{
		ParserFailure,
		UnconnectedBlocks,
		EmptyBody,
		UnnecessaryPass,
		UnreadVariables,
		UndefinedVariables,
		PossiblyUndefined,
		OverwrittenVariables,
		AppendToNonList,
		UsedIterationList,
		UnusedIterationVar,
		NonListIterations,
		EmptyIterations,
		TypeChanges,
		IterVariableIsList,
		UnknownFunctions,
		NotAFunction,
		ActionAfterReturn,
		IncompatibleTypes,
		ReturnOutsideFunction,
		ReadOutOfScope,
		WriteOutOfScope,
		AliasedBuiltin,
		MethodNotInType,
	}
}

// IsError reports whether a kind terminates analysis rather than merely
// flagging student code. Everything except a parser failure is pedagogic
// feedback on an analyzable program.
func IsError(k Kind) bool {
	return k == ParserFailure
}

// Description returns a human-readable explanation of the kind, used by
// documentation and editor hovers.
func Description(k Kind) string {
	switch k {
	case ParserFailure:
		return "The source could not be tokenized or parsed"
	case UnconnectedBlocks:
		return "A placeholder block (___) was left in the program"
	case EmptyBody:
		return "A block that requires statements is empty"
	case UnnecessaryPass:
		return "A pass statement appears alongside real statements"
	case UnreadVariables:
		return "A variable is written but its value is never read"
	case UndefinedVariables:
		return "A variable is read before any value is written to it"
	case PossiblyUndefined:
		return "A variable is read but only set on some execution paths"
	case OverwrittenVariables:
		return "A variable is written twice with no read in between"
	case AppendToNonList:
		return "append is called on a value that is not a list"
	case UsedIterationList:
		return "The list being iterated is modified inside its own loop"
	case UnusedIterationVar:
		return "The loop variable is never used inside the loop body"
	case NonListIterations:
		return "The iteration source is not a sequence"
	case EmptyIterations:
		return "The iteration source is known to be an empty list"
	case TypeChanges:
		return "A variable is reassigned to a value of a different type"
	case IterVariableIsList:
		return "The loop variable shadows the list being iterated"
	case UnknownFunctions:
		return "A call target could not be resolved to any function"
	case NotAFunction:
		return "A call target resolves to a non-function value"
	case ActionAfterReturn:
		return "Code appears after a return on the same path"
	case IncompatibleTypes:
		return "A binary operator is applied to incompatible operand types"
	case ReturnOutsideFunction:
		return "A return statement appears at module level"
	case ReadOutOfScope:
		return "A variable defined in another scope is read"
	case WriteOutOfScope:
		return "A variable defined in another scope is written"
	case AliasedBuiltin:
		return "A built-in name is reassigned"
	case MethodNotInType:
		return "A known method is called on a type that does not provide it"
	default:
		return "Unknown issue kind"
	}
}
