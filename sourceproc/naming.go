package sourceproc

import (
	"strings"

	"m3u-helper/config"
	"m3u-helper/utils"
)

// IsEligible reports whether name is a source playlist: an .m3u or .m3u8
// file that is not itself generated output.
func IsEligible(name string) bool {
	if !utils.IsPlaylistFile(name) {
		return false
	}
	base, _ := utils.SplitExt(name)
	return !strings.HasSuffix(base, config.FormattedSuffix)
}

// FormattedName inserts the output marker before the extension of name,
// e.g. name.m3u becomes name_formated.m3u.
func FormattedName(name string) string {
	base, ext := utils.SplitExt(name)
	if ext == "" {
		return base + config.FormattedSuffix
	}
	return base + config.FormattedSuffix + "." + ext
}
