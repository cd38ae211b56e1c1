package fmtconfig

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/xfmt/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
)

// parseEntries decodes data and returns its top-level entries in document
// order. Values are decoded by go-toml; the order comes from walking the
// document with the unstable parser since maps do not keep it.
func parseEntries(path string, data []byte) ([]Entry, error) {
	var doc map[string]interface{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path)
	}

	keys, raw, err := topLevelKeys(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path)
	}

	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		value, ok := doc[key]
		if !ok {
			continue
		}

		rendered, ok := raw[key]
		if !ok {
			var err *errors.XfmtError
			rendered, err = renderScalar(value)
			if err != nil {
				return nil, err.WithDetail("key", key).WithDetail("path", path)
			}
		}
		entries = append(entries, Entry{Key: key, Value: rendered})
	}

	return entries, nil
}

// topLevelKeys lists the first component of every key-value and table header
// in the order it first appears. Date and time values of top-level keys are
// returned as written so fractional seconds keep their digits.
func topLevelKeys(data []byte) ([]string, map[string]string, error) {
	var p unstable.Parser
	p.Reset(data)

	seen := make(map[string]bool)
	raw := make(map[string]string)
	var keys []string

	for p.NextExpression() {
		expr := p.Expression()
		switch expr.Kind {
		case unstable.KeyValue, unstable.Table, unstable.ArrayTable:
		default:
			continue
		}

		it := expr.Key()
		if !it.Next() {
			continue
		}
		key := string(it.Node().Data)
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}

		if expr.Kind == unstable.KeyValue && !it.Next() {
			if token, ok := dateToken(expr.Value()); ok {
				raw[key] = token
			}
		}
	}

	if err := p.Error(); err != nil {
		return nil, nil, err
	}
	return keys, raw, nil
}

// dateToken returns the source text of a date or time value with the
// delimiters in their upper-case form and a space separator written as T.
func dateToken(value *unstable.Node) (string, bool) {
	switch value.Kind {
	case unstable.DateTime, unstable.LocalDateTime, unstable.LocalDate, unstable.LocalTime:
	default:
		return "", false
	}

	token := strings.ToUpper(string(value.Data))
	if len(token) > 10 && token[10] == ' ' {
		token = token[:10] + "T" + token[11:]
	}
	return token, true
}

// renderScalar returns the canonical string form of a decoded TOML value.
func renderScalar(value interface{}) (string, *errors.XfmtError) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return formatFloat(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case time.Time:
		return v.Format(time.RFC3339Nano), nil
	case toml.LocalDate:
		return v.String(), nil
	case toml.LocalTime:
		return v.String(), nil
	case toml.LocalDateTime:
		return v.String(), nil
	case []interface{}:
		return "", unsupported("Array")
	case map[string]interface{}:
		return "", unsupported("Table")
	default:
		return "", unsupported(fmt.Sprintf("%T", value))
	}
}

func unsupported(kind string) *errors.XfmtError {
	return errors.Newf(errors.ErrUnsupportedConfigValue, "unsupported config type: %s", kind).
		WithDetail("kind", kind)
}

func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
