package remote

import (
	"fmt"
	"slices"
	"strings"

	set "github.com/hashicorp/go-set/v2"
	"github.com/samber/lo"

	foundationerrors "git.home.luguber.info/inful/remotebuild/internal/foundation/errors"
)

// supportedArchitectures is the remote builder's allow-list. It is never
// handed out directly; SupportedArchitectures returns a copy.
var supportedArchitectures = set.From([]string{
	"amd64",
	"arm64",
	"armhf",
	"i386",
	"ppc64el",
	"riscv64",
	"s390x",
})

// SupportedArchitectures returns the allow-list in sorted order.
func SupportedArchitectures() []string {
	archs := supportedArchitectures.Slice()
	slices.Sort(archs)
	return archs
}

// IsSupportedArchitecture reports whether arch is on the allow-list.
func IsSupportedArchitecture(arch string) bool {
	return supportedArchitectures.Contains(arch)
}

// UnsupportedArchitectureError lists the names rejected by ValidateArchitectures,
// in the order they were given.
type UnsupportedArchitectureError struct {
	Architectures []string
}

func (e *UnsupportedArchitectureError) Error() string {
	return fmt.Sprintf("The following architectures are not supported by the remote builder: %s.\n"+
		"Please remove them from the architecture list and try again.", formatNameList(e.Architectures))
}

// ValidateArchitectures returns nil when every name is supported. Otherwise
// the returned validation error wraps an *UnsupportedArchitectureError.
func ValidateArchitectures(archs []string) error {
	unsupported := lo.Filter(archs, func(arch string, _ int) bool {
		return !IsSupportedArchitecture(arch)
	})
	if len(unsupported) == 0 {
		return nil
	}
	return foundationerrors.WrapError(&UnsupportedArchitectureError{Architectures: unsupported}, foundationerrors.CategoryValidation, "unsupported architectures").
		Fatal().
		UserAction().
		WithContext("architectures", unsupported).
		Build()
}

// formatNameList renders names as a bracketed, quoted list: ['a', 'b'].
func formatNameList(names []string) string {
	return "[" + strings.Join(lo.Map(names, quoteItem), ", ") + "]"
}

func quoteItem(item string, _ int) string {
	return "'" + item + "'"
}
