package flag

import (
	"context"

	"github.com/spf13/pflag"
)

type (
	flagsKey struct{}
	argsKey  struct{}
)

// NewContext derives a context that carries fs from ctx.
func NewContext(ctx context.Context, fs *pflag.FlagSet) context.Context {
	return context.WithValue(ctx, flagsKey{}, fs)
}

// FromContext returns the FlagSet ctx carries. It panics in case ctx carries
// no FlagSet.
func FromContext(ctx context.Context) *pflag.FlagSet {
	return ctx.Value(flagsKey{}).(*pflag.FlagSet)
}

// WithArgs derives a context that carries the positional args from ctx.
func WithArgs(ctx context.Context, args []string) context.Context {
	return context.WithValue(ctx, argsKey{}, args)
}

// Args returns the positional args ctx carries.
func Args(ctx context.Context) []string {
	args, _ := ctx.Value(argsKey{}).([]string)
	return args
}

// FirstArg returns the first positional arg ctx carries or an empty string.
func FirstArg(ctx context.Context) string {
	if args := Args(ctx); len(args) > 0 {
		return args[0]
	}
	return ""
}

// GetString returns the value of the named string flag ctx carries. Unknown
// flags yield an empty string.
func GetString(ctx context.Context, name string) string {
	fs := FromContext(ctx)
	if v, err := fs.GetString(resolve(fs, name)); err == nil {
		return v
	}
	return ""
}

// GetBool returns the value of the named boolean flag ctx carries.
func GetBool(ctx context.Context, name string) bool {
	fs := FromContext(ctx)
	if v, err := fs.GetBool(resolve(fs, name)); err == nil {
		return v
	}
	return false
}

// IsSet reports whether the named flag was given on the command line.
func IsSet(ctx context.Context, name string) bool {
	fs := FromContext(ctx)
	return fs.Changed(resolve(fs, name))
}

// resolve returns the alias of name that was set on the command line, or
// name itself.
func resolve(fs *pflag.FlagSet, name string) string {
	f := fs.Lookup(name)
	if f == nil || f.Changed {
		return name
	}
	for _, alias := range f.Annotations[aliasAnnotation] {
		if af := fs.Lookup(alias); af != nil && af.Changed {
			return alias
		}
	}
	return name
}
