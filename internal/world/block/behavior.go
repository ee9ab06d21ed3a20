package block

// BlockBehavior определяет свойства вида блока.
// Набор видов закрыт: девять материалов, каждый регистрируется в init()
// своего файла в пакете implementations.
type BlockBehavior interface {
	ID() BlockID
	Name() string

	// Opaque сообщает, заслоняет ли блок грани соседей.
	// Прозрачные для окклюзии виды (стекло, вода, листва) возвращают false.
	Opaque() bool

	// Solid сообщает, участвует ли блок в коллизиях и пике луча.
	// Вода не твердая: сквозь нее проходят и тело, и луч.
	Solid() bool

	// Breakable сообщает, можно ли разрушить блок.
	// Бедрок — пол мира, разрушению не подлежит.
	Breakable() bool
}
