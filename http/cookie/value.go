package cookie

import (
	"strconv"

	"github.com/cockroachdb/errors"
	json "github.com/json-iterator/go"
)

// jsonPrefix tags the values holding a serialized structure, so they can be told apart
// from plain strings once they come back from the user-agent.
const jsonPrefix = "j:"

// Value converts an arbitrary value into the cookie value. Strings are kept as is, numbers
// and booleans are formatted, everything else is serialized as json and tagged.
func Value(v any) (string, error) {
	switch value := v.(type) {
	case string:
		return value, nil
	case int:
		return strconv.Itoa(value), nil
	case int64:
		return strconv.FormatInt(value, 10), nil
	case uint64:
		return strconv.FormatUint(value, 10), nil
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(value), nil
	}

	serialized, err := json.ConfigCompatibleWithStandardLibrary.Marshal(v)
	if err != nil {
		return "", errors.Wrap(err, "serialize cookie value")
	}

	return jsonPrefix + string(serialized), nil
}
