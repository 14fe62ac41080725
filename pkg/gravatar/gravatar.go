// Package gravatar derives deterministic avatar URLs from email addresses.
package gravatar

import (
	"crypto/md5"
	"fmt"
	"net/url"
	"strings"
)

const baseURL = "https://www.gravatar.com/avatar"

// URL returns the Gravatar URL for an email: 200px, pg-rated, with the
// "mystery man" fallback for addresses without a Gravatar account.
func URL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))

	params := url.Values{}
	params.Set("s", "200")
	params.Set("r", "pg")
	params.Set("d", "mm")

	return fmt.Sprintf("%s/%x?%s", baseURL, sum, params.Encode())
}
