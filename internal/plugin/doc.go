// Package plugin loads user features written in Lua.
//
// Each script listed under plugins.lua in the configuration defines one
// feature (see package lua for the script format). The Manager loads the
// scripts in order, reports load failures as events and closes the Lua
// states on shutdown:
//
//	m := plugin.NewManager(lua.WithExecutionTimeout(time.Second))
//	features, err := m.LoadAll(cfg.Plugins.Lua)
//	for _, f := range features {
//	    if err := ctrl.Mount(f); err != nil { ... }
//	}
//	defer m.UnloadAll()
package plugin
