package common

type Module string

const (
	ModuleSettlement Module = "settlement"
)

func (m Module) String() string {
	return string(m)
}
