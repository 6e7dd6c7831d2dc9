// Package gen resolves loaded XML Schema entities and generates Go code
// from them.
//
// # Architecture
//
// The code generation pipeline follows this flow:
//
//	Schema document (*.xsd)
//	        ↓
//	   load.Schema (entity forest with pending references)
//	        ↓
//	   Resolver (bases, groups and attribute groups expanded)
//	        ↓
//	   Graph (resolved top-level entities)
//	        ↓
//	   MinimalDialect (per-kind emitters)
//	        ↓
//	   Generated code, one file per top-level type
//
// # Key Types
//
//   - Graph: the resolved entities and imports of one schema
//   - Resolver: expands base types, group and attribute-group references
//   - Config: global configuration for code generation
//   - Scope: names nested types after their owner
//   - TypeRef: a type reference resolved for emission
//
// # Interface Hierarchy
//
//	MinimalDialect
//	├── Name() string
//	├── Struct, TupleStruct, Enum → TypeEmitter
//	├── Field, EnumCase → MemberEmitter
//	└── Alias
//
//	DocGenerator (optional, renders doc.go)
//
// # Error Handling
//
//   - ResolveError: a base, group or attribute-group reference names nothing
//   - CycleError: a reference cycle between bases or groups
//   - ConfigError: configuration errors
//   - GenerationError: rendering or writing a file failed
//   - AggregateError: several of the above
//
// Example error handling:
//
//	g, err := gen.NewGraph(config, schema)
//	if err != nil {
//	    if gen.IsCycleError(err) {
//	        // Handle the cycle
//	    }
//	    return err
//	}
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	config, err := gen.NewConfig(
//	    gen.WithTarget("./po"),
//	    gen.WithFeatures(gen.FeatureSnapshot),
//	    gen.WithHeader("// Custom header"),
//	)
//
// or read from a YAML file with LoadConfigFile.
//
// # Usage
//
//	import "github.com/syssam/xsdgen/compiler/gen/golang"
//
//	err := golang.Generate(graph)
//
// # Features
//
//   - snapshot: skip generation when the resolved schema is unchanged
//   - format: run goimports over the generated files
//   - stringer: generate String methods for enums (enabled by default)
package gen
