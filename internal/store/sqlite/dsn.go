package sqlite

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

const memoryDSN = ":memory:"

// connPragmas run on every pooled connection the driver opens.
var connPragmas = []string{
	"busy_timeout(30000)",
	"foreign_keys(1)",
}

// withPragmas appends connPragmas to a driver DSN as _pragma parameters.
func withPragmas(driverDSN string) string {
	params := url.Values{}
	for _, pragma := range connPragmas {
		params.Add("_pragma", pragma)
	}
	sep := "?"
	if strings.Contains(driverDSN, "?") {
		sep = "&"
	}
	return driverDSN + sep + params.Encode()
}

func parseDSN(dsn string) (string, error) {
	if !strings.HasPrefix(dsn, "sqlite://") {
		return "", fmt.Errorf("invalid sqlite DSN scheme, expected sqlite://")
	}

	rest := strings.TrimPrefix(dsn, "sqlite://")

	if rest == memoryDSN {
		return memoryDSN, nil
	}
	if rest == "" {
		return "", fmt.Errorf("sqlite DSN has no database path")
	}

	if strings.HasPrefix(rest, "/") {
		return rest, nil
	}

	if strings.HasPrefix(rest, "./") {
		return rest, nil
	}

	if strings.Contains(rest, "?") {
		parts := strings.SplitN(rest, "?", 2)
		path := parts[0]
		query := parts[1]

		unescaped, err := url.PathUnescape(path)
		if err != nil {
			return "", fmt.Errorf("unescaping path: %w", err)
		}
		path = unescaped

		if !filepath.IsAbs(path) && !strings.HasPrefix(path, "./") {
			path = "./" + path
		}
		return path + "?" + query, nil
	}

	unescaped, err := url.PathUnescape(rest)
	if err != nil {
		return "", fmt.Errorf("unescaping path: %w", err)
	}
	rest = unescaped

	if !filepath.IsAbs(rest) {
		rest = "./" + rest
	}

	return rest, nil
}
