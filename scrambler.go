// Package scrambler generates random move sequences (scrambles) for twisty
// puzzles in standard notation.
//
// # Quick Start
//
// Generate a 3x3 scramble:
//
//	text, err := scrambler.GenerateModeText(scrambler.Mode3x3)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(text) // e.g. "R' U F2 D L B' ..."
//
// # Reproducible Scrambles
//
// Pass a seeded source to get the same scramble every run:
//
//	gen := scrambler.NewGenerator(scrambler.WithSeed(42))
//	s, err := gen.Generate(scrambler.Preset(scrambler.Mode2x2))
//
// # Custom Configurations
//
//	cfg, err := scrambler.NewConfig(25,
//	    scrambler.ParseMoveset("URFDLB"),
//	    scrambler.ParseModifiers(" '2"))
//
// # Move Rules
//
// No move symbol repeats the symbol one or two positions before it, so
// "R R" and "R U R" never appear. Opposite faces such as U and D are not
// treated specially.
package scrambler
