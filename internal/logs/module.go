package logs

import "github.com/reusee/dscope"

// Module provides Logger, Writer and Level to a dscope.Scope.
type Module struct {
	dscope.Module
}
