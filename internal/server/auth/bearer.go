package auth

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/aura/internal/common"
)

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// value. It only checks shape (prefix, non-empty, three dot-separated JWT
// segments) and never consults any store.
func BearerToken(value string) (string, error) {
	token, ok := strings.CutPrefix(value, common.BearerPrefix)
	if !ok {
		return "", fmt.Errorf("%w: missing bearer prefix", common.ErrorUnauthorized)
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("%w: empty token", common.ErrorUnauthorized)
	}

	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		return "", fmt.Errorf("%w: malformed token", common.ErrorUnauthorized)
	}
	for _, s := range segments {
		if s == "" {
			return "", fmt.Errorf("%w: malformed token", common.ErrorUnauthorized)
		}
	}

	return token, nil
}
