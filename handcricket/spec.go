package handcricket

import "fmt"

// InterfaceVersion is the revision of the contract interface these bindings
// were written against.
const InterfaceVersion = 1

// FunctionSpec describes one contract entry point: its exported name and the
// names of its arguments, in call order.
type FunctionSpec struct {
	Name string
	Args []string
}

// Spec is the contract's interface specification, one entry per method.
var Spec = []FunctionSpec{
	{Name: "get_hub"},
	{Name: "set_hub", Args: []string{"new_hub"}},
	{Name: "upgrade", Args: []string{"new_wasm_hash"}},
	{Name: "get_game", Args: []string{"session_id"}},
	{Name: "get_admin"},
	{Name: "set_admin", Args: []string{"new_admin"}},
	{Name: "start_game", Args: []string{"session_id", "player1", "player2", "player1_points", "player2_points"}},
	{Name: "choose_role", Args: []string{"session_id", "player", "bat"}},
	{Name: "commit_number", Args: []string{"session_id", "player", "commitment"}},
	{Name: "reveal_number", Args: []string{"session_id", "player", "number", "proof_blob"}},
}

var specByName = func() map[string]FunctionSpec {
	m := make(map[string]FunctionSpec, len(Spec))
	for _, fn := range Spec {
		m[fn.Name] = fn
	}
	return m
}()

// checkCall validates a function name and argument count against the spec.
func checkCall(name string, argc int) error {
	fn, ok := specByName[name]
	if !ok {
		return fmt.Errorf("unknown contract function %q", name)
	}
	if len(fn.Args) != argc {
		return fmt.Errorf("%s takes %d argument(s), got %d", name, len(fn.Args), argc)
	}
	return nil
}
