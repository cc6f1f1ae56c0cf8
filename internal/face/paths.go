package face

import "strings"

// Callers address uploads relative to their own storage root, which is
// mounted at /app inside the service container.
const containerRoot = "/app"

// MapPath translates a caller path into the container filesystem view.
func MapPath(path string) string {
	switch {
	case strings.HasPrefix(path, "/uploads"):
		return containerRoot + path
	case strings.HasPrefix(path, "uploads"):
		return containerRoot + "/" + path
	default:
		return path
	}
}
