package cli

import "fmt"

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type badFlagError struct {
	flag string
	got  string
	want string
}

func (e badFlagError) Error() string {
	return fmt.Sprintf("invalid --%s %q (want %s)", e.flag, e.got, e.want)
}

func errBadFlag(flag, got, want string) error {
	return badFlagError{flag: flag, got: got, want: want}
}
