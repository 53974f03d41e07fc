package feedback

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// sanitizeLabel strips any markup from author-supplied field labels before
// they reach rendered feedback. Labels come from definition files and OpenAPI
// documents, which are not trusted to be plain text.
func sanitizeLabel(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(labelPolicy.Sanitize(trimmed))
}
