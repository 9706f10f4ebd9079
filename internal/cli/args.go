package cli

// ExactArgs returns an ArgsFunc that accepts exactly n positional args.
func ExactArgs(n int) ArgsFunc {
	return func(args []string) error {
		if len(args) == n {
			return nil
		}
		if n == 1 {
			return Usagef("expected 1 arg, got %d", len(args))
		}
		return Usagef("expected %d args, got %d", n, len(args))
	}
}
