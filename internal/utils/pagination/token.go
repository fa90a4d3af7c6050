package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/ledger_books/internal/core/domain"
)

// tokenVersion guards against decoding tokens minted by an older format. The
// ledger name inside stops a receivables token being replayed on the cash book.
const tokenVersion = "v1"

// EncodeToken packs a ledger name and its view state into an opaque token.
func EncodeToken(ledger string, state domain.ViewState) string {
	tokenStr := fmt.Sprintf("%s|%s|%d|%d", tokenVersion, ledger, state.Page, state.PageSize)
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a token produced by EncodeToken for the same ledger.
func DecodeToken(ledger, token string) (domain.ViewState, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return domain.ViewState{}, fmt.Errorf("invalid page token format (base64 decode): %w", err)
	}
	parts := strings.Split(string(decodedBytes), "|")
	if len(parts) != 4 || parts[0] != tokenVersion {
		return domain.ViewState{}, fmt.Errorf("invalid page token format (split)")
	}
	if parts[1] != ledger {
		return domain.ViewState{}, fmt.Errorf("page token belongs to ledger %q, not %q", parts[1], ledger)
	}

	page, err := strconv.Atoi(parts[2])
	if err != nil {
		return domain.ViewState{}, fmt.Errorf("invalid page token format (page): %w", err)
	}
	size, err := strconv.Atoi(parts[3])
	if err != nil {
		return domain.ViewState{}, fmt.Errorf("invalid page token format (page size): %w", err)
	}
	return domain.ViewState{Page: page, PageSize: size}.Normalize(), nil
}
