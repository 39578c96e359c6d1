package repo

import (
	"strings"

	"github.com/SmdhMdep/iot-status-api/pkg/apperrors"
)

// A listing cursor resumes exactly one source: it is the source's own opaque
// cursor tagged with a single-character prefix naming that source. There is
// no cursor form that resumes both stores at once.
const (
	ledgerPageTag = "l"
	fleetPageTag  = "f"
)

// decodePage splits a composite cursor into the ledger and fleet cursors.
// At most one of the two results is non-nil; both are nil for a first page.
func decodePage(page *string) (ledgerPage, fleetPage *string, err error) {
	if page == nil || *page == "" {
		return nil, nil, nil
	}

	if inner, ok := strings.CutPrefix(*page, ledgerPageTag); ok {
		return &inner, nil, nil
	}
	if inner, ok := strings.CutPrefix(*page, fleetPageTag); ok {
		return nil, &inner, nil
	}
	return nil, nil, apperrors.InvalidArgument("invalid page key")
}

func encodeLedgerPage(inner string) *string {
	page := ledgerPageTag + inner
	return &page
}

func encodeFleetPage(inner string) *string {
	page := fleetPageTag + inner
	return &page
}
