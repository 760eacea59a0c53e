package extract

import (
	"strconv"
	"strings"

	"github.com/cmmoran/metagen/internal/model"
)

// ResolveOptions turns the directive argument text into an Options value.
// Arguments are space-separated `key` or `key=value` tokens; a bare key means
// true. Unknown keys and non-boolean values are ignored so a malformed
// directive degrades to the defaults instead of aborting generation. There is
// no error path.
func ResolveOptions(args string) model.Options {
	opts := model.DefaultOptions()

	for _, tok := range strings.Fields(args) {
		key, val, hasVal := strings.Cut(tok, "=")
		b := true
		if hasVal {
			parsed, err := strconv.ParseBool(val)
			if err != nil {
				continue
			}
			b = parsed
		}
		switch strings.ToLower(key) {
		case "properties":
			opts.Properties = b
		case "methods":
			opts.Methods = b
		case "fields":
			opts.Fields = b
		case "constructors":
			opts.Constructors = b
		case "inherited":
			opts.Inherited = b
		case "private":
			opts.Private = b
		}
	}

	return opts
}
