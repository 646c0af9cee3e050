package pipeline

import (
	"strings"
	"unicode"
)

// PHPLineTag marks PHP code written without an opening <?php tag. The
// downstream highlighter lexes it with inline start.
const PHPLineTag = "php-line"

var phpFence = fencePattern("php")

// NormalizePHPTags retags ```php blocks that contain no "<?php" as
// ```php-line, trimming leading whitespace from the body. Blocks that contain
// "<?php" anywhere are left unchanged.
func NormalizePHPTags(content string) string {
	return rewriteFences(phpFence, content, func(body string) (string, bool) {
		if strings.Contains(body, "<?php") {
			return "", false
		}
		return "```" + PHPLineTag + "\n" + strings.TrimLeftFunc(body, unicode.IsSpace) + "```", true
	})
}
