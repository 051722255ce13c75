// Package poet renders Java source files from a declaration tree.
//
// A File pairs a package name with one top-level TypeSpec and an import
// configuration. Rendering happens in two passes. The first pass writes the
// whole file into io.Discard while recording every class it could import.
// The imports package turns those references into an import plan, and the
// second pass writes the real text, spelling a class by its simple name only
// where the plan makes that name available.
//
//	greeter, _ := poet.NewClass("Greeter").
//	    AddModifiers(poet.Public).
//	    AddMethod(hello).
//	    Build()
//	file, err := poet.NewFile("demo.app", greeter).
//	    AddImportWildcardHint("java.util", 3).
//	    Build()
//	if err != nil {
//	    return err
//	}
//	_, err = file.WriteTo(os.Stdout)
package poet
