// Package dispatchcfg loads declarative dispatch tables from YAML.
//
// A dispatch table augments controller registrations at assembly time:
// keys are action reverse paths ("namespace/name"), values are raw
// attribute tags appended after the tags the controller declares in code.
// This lets deployments rebind paths, patterns and role requirements
// without recompiling.
//
//	actions:
//	  books/list:
//	    - Path(/catalog)
//	  books/edit:
//	    - Roles(editor)
//
//	table, err := dispatchcfg.LoadFile("dispatch.yaml")
//	app, err := mantle.New(
//	    mantle.WithControllers(books),
//	    mantle.WithDispatchTable(table),
//	)
package dispatchcfg
