// Package flagx lets several packages read their own flags from a shared
// command line. Each reader narrows os.Args down to the names it owns before
// parsing, so flags defined elsewhere never cause a parse error.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// FilterArgs keeps only the arguments that belong to flags named in allowed.
// Both "-c value" and "-c=value" forms are kept. A name matches with one or
// two leading dashes, the same as the flag package accepts.
func FilterArgs(args []string, allowed []string) []string {
	keep := make(map[string]struct{}, len(allowed))
	for _, name := range allowed {
		keep[flagName(name)] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, inline := strings.Cut(arg, "=")
		if _, ok := keep[flagName(name)]; !ok {
			continue
		}
		filtered = append(filtered, arg)

		if !inline && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			filtered = append(filtered, args[i])
		}
	}

	return filtered
}

func flagName(s string) string {
	return strings.TrimLeft(s, "-")
}

// JsonConfigFlags returns the path given via -c or -config, or "" if neither
// is set.
func JsonConfigFlags() string {
	return stringFlag([]string{"c", "config"}, "")
}

// EnvFileFlag returns the dotenv path given via -env, or def.
func EnvFileFlag(def string) string {
	return stringFlag([]string{"env"}, def)
}

// stringFlag parses a single string value that may be spelled under several
// names. The last occurrence wins.
func stringFlag(names []string, def string) string {
	allowed := make([]string, len(names))
	for i, n := range names {
		allowed[i] = "-" + n
	}

	var value string
	fs := flag.NewFlagSet(names[0], flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, n := range names {
		fs.StringVar(&value, n, def, "")
	}
	_ = fs.Parse(FilterArgs(os.Args[1:], allowed))

	return value
}
