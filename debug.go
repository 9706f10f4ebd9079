//go:build !release

package strassert

// Debug reports whether DebugEqual and DebugNotEqual perform any work. It is false when the package is built with the "release" tag.
const Debug = true
