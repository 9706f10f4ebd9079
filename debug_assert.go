package strassert

// DebugEqual is Equal in builds without the "release" tag. With the tag, it compiles to nothing: no comparison, no diff, and no message formatting.
func DebugEqual[L, R Text](t TestingT, left L, right R, msgAndArgs ...any) {
	if Debug {
		if h, ok := t.(tHelper); ok {
			h.Helper()
		}
		Equal(t, left, right, msgAndArgs...)
	}
}

// DebugNotEqual is NotEqual in builds without the "release" tag, and a no-op with it.
func DebugNotEqual[L, R Text](t TestingT, left L, right R, msgAndArgs ...any) {
	if Debug {
		if h, ok := t.(tHelper); ok {
			h.Helper()
		}
		NotEqual(t, left, right, msgAndArgs...)
	}
}
