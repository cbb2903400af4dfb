package enum

import (
	"fmt"
	"strings"
)

// Branch identifies one of the two restaurant branches. Stored as its
// lowercase slug; the prefix is the fixed uppercase code used in
// closing ids.
type Branch string

const (
	BranchCantt Branch = "cantt"
	BranchDHA   Branch = "dha"
)

// Branches lists all known branches.
var Branches = []Branch{BranchCantt, BranchDHA}

// ParseBranch accepts the slug, the id prefix, or the display name
// ("Cantt Branch") in any casing.
func ParseBranch(s string) (Branch, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.TrimSuffix(norm, " branch")
	switch norm {
	case "cantt":
		return BranchCantt, nil
	case "dha":
		return BranchDHA, nil
	}
	return "", fmt.Errorf("unknown branch %q", s)
}

// Prefix returns the branch code used in closing ids.
func (b Branch) Prefix() string {
	switch b {
	case BranchDHA:
		return "DHA"
	default:
		return "CANTT"
	}
}

// DisplayName returns the branch name as printed on receipts.
func (b Branch) DisplayName() string {
	switch b {
	case BranchDHA:
		return "DHA Branch"
	default:
		return "Cantt Branch"
	}
}

func (b Branch) Valid() bool {
	return b == BranchCantt || b == BranchDHA
}

func (b Branch) String() string {
	return string(b)
}
