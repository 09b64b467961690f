// Package debrix compiles debrix component templates into JavaScript
// modules with a position map back to the template.
//
// A template declares its dependencies with using statements and its
// components as top level elements:
//
//	using component Card from "./card.js"
//	using { binder focus } from "./binders.js"
//
//	<section>
//	  #when items.length {
//	    #each item in items {
//	      <Card title={item.title}>{item.body}</Card>
//	    }
//	  } #else {
//	    <p bind:focus={active}>Nothing here</p>
//	  }
//	</section>
//
// # Basic Usage
//
// Compile a template for the client target:
//
//	chunk, err := debrix.Build(input, debrix.TargetClient)
//	if err != nil {
//	    return err
//	}
//	fmt.Print(chunk.Source)
//
// Create a Compiler to configure logging, naming and caching:
//
//	compiler := debrix.MustNew(
//	    debrix.WithLogger(logger),
//	    debrix.WithSourceName("card.debrix"),
//	    debrix.WithStore(debrix.NewMemoryStore()),
//	)
//	chunk, err := compiler.Build(ctx, input)
//
// # Targets
//
// TargetClient emits a module that builds and updates the DOM through the
// @debrix/internal runtime. TargetHydration and TargetServer are reserved;
// Build rejects them before reading the input.
//
// # Errors
//
// Syntax errors carry a *ParserError with the byte offset and the tokens
// that would have been accepted there. Semantic errors carry a
// *CompilerError with the offending span. Both are wrapped in cuserr
// errors and can be extracted with errors.As, AsParserError or
// AsCompilerError:
//
//	if pe, ok := debrix.AsParserError(err); ok {
//	    fmt.Printf("%d:%d %s\n", pe.Line+1, pe.Column+1, pe)
//	}
//
// ErrorKind returns the numeric tag host bundler adapters attach to
// failures: 0 for compiler errors and 1 for parser errors.
//
// # Source Maps
//
// Chunk.Mappings links generated positions to template positions, all
// zero based. Chunk.SourceMap and Chunk.MarshalSourceMap encode them as a
// revision 3 source map.
//
// # Projects
//
// A debrix.yaml file describes a source tree to compile:
//
//	target: client
//	src: src
//	out: dist
//	sourcemaps: true
//	store:
//	  driver: filesystem
//	  dsn: .debrix-cache
//
// LoadConfig reads it, Project.BuildAll compiles every included file and
// Watcher rebuilds files as they change.
//
// # Artifact Stores
//
// Compiled modules can be cached by source and target. Stores are opened
// by driver name: "memory", "filesystem" (dsn is a directory) and
// "postgres" (dsn is a lib/pq connection string). Custom drivers register
// with RegisterStoreDriver.
package debrix
