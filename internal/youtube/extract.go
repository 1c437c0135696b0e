package youtube

import (
	"encoding/json"
	"regexp"

	"github.com/mmcdole/tube/internal/domain"
)

// initialDataRe captures the embedded JSON assignment up to the closing
// script boundary. Non-greedy: the payload never contains that literal
// closing tag.
var initialDataRe = regexp.MustCompile(`(?s)var ytInitialData = (.+?);</script>`)

// ExtractInitialData locates the embedded data blob inside a results page
// and parses it. A missing marker and malformed JSON are reported as
// distinct ParseError causes; both mean upstream markup changed.
func ExtractInitialData(html string) (any, error) {
	m := initialDataRe.FindStringSubmatch(html)
	if m == nil {
		return nil, &domain.ParseError{Cause: "initial data marker not found"}
	}

	var data any
	if err := json.Unmarshal([]byte(m[1]), &data); err != nil {
		return nil, &domain.ParseError{Cause: "initial data is not valid JSON", Err: err}
	}
	return data, nil
}
