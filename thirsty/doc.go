// Package thirsty implements the Thirsty-lang interpreter, an embeddable
// scripting language for Go applications.
//
// Programs are compiled once into a Script and run any number of times, each
// run against fresh, isolated state:
//
//	engine := thirsty.NewEngine(thirsty.Config{})
//	script, err := engine.Compile(`
//	    drink greeting = "hello"
//	    pour greeting + ", world"
//	`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := script.Run(ctx, thirsty.RunOptions{Output: os.Stdout})
//
// The language is deliberately small: dynamically typed values, functions
// with copy-in scoping, classes with instance methods, try/catch/finally,
// cooperative async/await and a loader-backed module system. Execution is
// bounded — call depth and loop iteration caps make runaway scripts
// impossible — and hosts can layer a SecurityHook over every variable write.
//
// Host capabilities are exposed as namespaces of builtin functions via
// Engine.RegisterNamespace; operations that complete later return a pending
// task with NewPending and settle when the script awaits them.
package thirsty
