package configs

import "github.com/reusee/dscope"

type Module struct {
	dscope.Module
}

func (Module) Settings() Settings {
	return Default()
}
