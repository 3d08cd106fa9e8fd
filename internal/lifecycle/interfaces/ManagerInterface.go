package interfaces

type ManagerInterface interface {
	Init()
	Stop()
	Restore() error
	Persist() error
}
