package types

import "strings"

// Supported output formats
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// DefaultFormat applies when a call omits the format argument.
const DefaultFormat = FormatSVG

// NormalizeFormat canonicalizes the format argument: empty means the
// default, matching is case-insensitive, anything else is rejected.
func NormalizeFormat(format string) (string, error) {
	if format == "" {
		return DefaultFormat, nil
	}
	switch strings.ToLower(format) {
	case FormatSVG:
		return FormatSVG, nil
	case FormatPNG:
		return FormatPNG, nil
	}
	return "", NewInvalidFormatError(format)
}

// ContentTypeForFormat maps an output format to its MIME type. The content
// type depends only on the requested format, never on the produced bytes.
func ContentTypeForFormat(format string) string {
	if format == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}
