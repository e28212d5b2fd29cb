package schema

import (
	"embed"

	"github.com/kaptinlin/go-i18n"
)

//go:embed locales/*.json
var localesFS embed.FS

// GetI18n returns an initialized internationalization bundle with embedded
// locales. The embedded files are compiled into the binary, so loading them
// cannot fail at runtime.
func GetI18n() *i18n.I18n {
	bundle := i18n.NewBundle(
		i18n.WithDefaultLocale("en"),
		i18n.WithLocales("en", "zh-Hans"),
	)

	//nolint:errcheck
	_ = bundle.LoadFS(localesFS, "locales/*.json")

	return bundle
}
