package command

func init() {
	RegisterCommand(&Command{
		Name:     "get",
		Arity:    2, // get key
		Executor: execGet,
	})

	RegisterCommand(&Command{
		Name:     "put",
		Arity:    3, // put key value
		Executor: execPut,
	})

	RegisterCommand(&Command{
		Name:     "del",
		Arity:    2, // del key
		Executor: execDel,
	})

	RegisterCommand(&Command{
		Name:     "keys",
		Arity:    1, // keys
		Executor: execKeys,
	})
}
