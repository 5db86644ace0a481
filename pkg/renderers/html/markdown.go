package html

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

type markdownConverter struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func newMarkdownConverter() *markdownConverter {
	return &markdownConverter{
		md:     goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough)),
		policy: bluemonday.UGCPolicy(),
	}
}

// convert renders Markdown and sanitizes the result. Goldmark already drops
// raw HTML unless told otherwise; the policy covers links and images.
func (m *markdownConverter) convert(source string) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(m.policy.Sanitize(buf.String())), nil
}
