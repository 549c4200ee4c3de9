package appcontext

const (
	// EnvTUI is the interactive full-screen front-end.
	EnvTUI Env = iota
	// EnvCLI is a one-shot command invocation.
	EnvCLI
)

type Env int

type Ctx struct {
	Env Env
}

func Declare(env Env) Ctx {
	return Ctx{
		Env: env,
	}
}
