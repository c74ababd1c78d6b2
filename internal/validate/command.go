package validate

import "strings"

// Secondary command names accepted after "sec <id>;".
const (
	CmdStatus  = "status"
	CmdExit    = "exit"
	CmdForward = "forward"
	CmdStop    = "stop"
	CmdAdd     = "add"
	CmdDel     = "del"
	CmdPatch   = "patch"

	// PatchReset is the only single argument accepted by "patch".
	PatchReset = "reset"
)

// SecondaryCommands lists every secondary command, used for completion.
var SecondaryCommands = []string{CmdStatus, CmdExit, CmdForward, CmdStop, CmdAdd, CmdPatch, CmdDel}

// PrimaryCommands lists the commands accepted after "pri".
var PrimaryCommands = []string{"status", "exit", "clear"}

// noArgSecondary are the secondary commands that take no argument.
var noArgSecondary = []string{CmdStatus, CmdExit, CmdForward, CmdStop}

// ValidateSecondary reports whether cmd is a well-formed secondary command.
//
//	status | exit | forward | stop
//	patch reset
//	add <kind>:<index> | del <kind>:<index>   (kind in PortKinds)
//	patch <src> <dst>                         (see IsPatchedIDsValid)
func ValidateSecondary(cmd string) bool {
	tokens := strings.Fields(cmd)

	switch len(tokens) {
	case 1:
		return contains(noArgSecondary, tokens[0])
	case 2:
		switch tokens[0] {
		case CmdPatch:
			return tokens[1] == PatchReset
		case CmdAdd, CmdDel:
			return isPortID(tokens[1])
		}
		return false
	case 3:
		return tokens[0] == CmdPatch && IsPatchedIDsValid(tokens[1], tokens[2])
	default:
		return false
	}
}

// isPortID reports whether s is "<kind>:<digits>" with kind in PortKinds.
func isPortID(s string) bool {
	kind, idx, ok := strings.Cut(s, ResourceDelim)
	if !ok {
		return false
	}
	return contains(PortKinds, kind) && isDigits(idx)
}

// IsPatchedIDsValid reports whether id1 and id2 can be patched together using the
// default ":" delimiter. See IsPatchedIDsValidDelim.
func IsPatchedIDsValid(id1, id2 string) bool {
	return IsPatchedIDsValidDelim(id1, id2, ResourceDelim)
}

// IsPatchedIDsValidDelim reports whether id1 and id2 are both bare numeric ids, or
// both "<word><delim><digits>" with a prefix from ResourceKinds. Mixing the two
// forms is rejected.
func IsPatchedIDsValidDelim(id1, id2, delim string) bool {
	if isDigits(id1) && isDigits(id2) {
		return true
	}
	if delim == "" {
		return false
	}

	r1, err := parseResourceID(id1, delim)
	if err != nil || !r1.Typed() {
		return false
	}
	r2, err := parseResourceID(id2, delim)
	if err != nil || !r2.Typed() {
		return false
	}
	return Compatible(r1, r2)
}
